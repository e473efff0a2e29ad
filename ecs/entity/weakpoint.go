package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

type WeakpointConfig struct {
	Owner    string
	Slot     int
	Position cp.Vector
	Radius   float64
	Health   int
	Extra    bool
}

func NewWeakpointBody(w *ecs.World, cfg WeakpointConfig) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: cfg.Position, Scale: 1}); err != nil {
		return 0, fmt.Errorf("weakpoint: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.WeakpointTagComponent.Kind(), &component.WeakpointTag{
		Slot:   cfg.Slot,
		Health: cfg.Health,
		Extra:  cfg.Extra,
	}); err != nil {
		return 0, fmt.Errorf("weakpoint: add tag: %w", err)
	}

	radius := cfg.Radius
	if radius <= 0 {
		radius = 16
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: radius, Enabled: true}); err != nil {
		return 0, fmt.Errorf("weakpoint: add collider: %w", err)
	}
	if err := ecs.Add(w, e, component.OwnerComponent.Kind(), &component.Owner{Boss: cfg.Owner}); err != nil {
		return 0, fmt.Errorf("weakpoint: add owner: %w", err)
	}

	return e, nil
}
