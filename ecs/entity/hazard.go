package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

type HazardConfig struct {
	Owner    string
	Position cp.Vector
	Width    float64
	Height   float64
	Lifetime float64
	Rotation float64
}

// NewHazardProp builds an armed hazard. A zero Lifetime keeps it until the
// registry flushes it.
func NewHazardProp(w *ecs.World, cfg HazardConfig) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: cfg.Position,
		Rotation: cfg.Rotation,
		Scale:    1,
	}); err != nil {
		return 0, fmt.Errorf("hazard: add transform: %w", err)
	}

	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = 32
	}
	if height <= 0 {
		height = 32
	}
	if err := ecs.Add(w, e, component.HazardPropComponent.Kind(), &component.HazardProp{
		Width:  width,
		Height: height,
		Armed:  true,
	}); err != nil {
		return 0, fmt.Errorf("hazard: add hazard: %w", err)
	}
	if err := ecs.Add(w, e, component.OwnerComponent.Kind(), &component.Owner{Boss: cfg.Owner}); err != nil {
		return 0, fmt.Errorf("hazard: add owner: %w", err)
	}

	if cfg.Lifetime > 0 {
		if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: cfg.Lifetime}); err != nil {
			return 0, fmt.Errorf("hazard: add ttl: %w", err)
		}
	}

	return e, nil
}
