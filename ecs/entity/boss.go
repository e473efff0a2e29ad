package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

type BossConfig struct {
	Name     string
	Position cp.Vector
	Clips    map[string]component.AnimationClip
	Idle     string
}

// NewBossBody builds the animated body a controller plays its states on.
func NewBossBody(w *ecs.World, cfg BossConfig) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: cfg.Position, Scale: 1}); err != nil {
		return 0, fmt.Errorf("boss: add transform: %w", err)
	}

	clips := make(map[string]component.AnimationClip, len(cfg.Clips))
	for name, clip := range cfg.Clips {
		clips[name] = clip
	}
	idle := cfg.Idle
	if idle == "" {
		idle = "idle"
	}
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		Clips:   clips,
		Current: idle,
		Blend:   1,
	}); err != nil {
		return 0, fmt.Errorf("boss: add animation: %w", err)
	}
	if err := ecs.Add(w, e, component.OwnerComponent.Kind(), &component.Owner{Boss: cfg.Name}); err != nil {
		return 0, fmt.Errorf("boss: add owner: %w", err)
	}

	return e, nil
}

// NewBossPart builds a persistent, armed part of a boss body.
func NewBossPart(w *ecs.World, boss, name string, position cp.Vector, radius float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: position, Scale: 1}); err != nil {
		return 0, fmt.Errorf("boss part: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.BossPartComponent.Kind(), &component.BossPart{Boss: boss, Name: name, Visible: true}); err != nil {
		return 0, fmt.Errorf("boss part: add part: %w", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: radius, Enabled: true}); err != nil {
		return 0, fmt.Errorf("boss part: add collider: %w", err)
	}

	return e, nil
}
