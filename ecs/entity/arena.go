package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

type ArenaNodeConfig struct {
	Group    string
	Position cp.Vector
	Width    float64
	Height   float64
	Hazard   bool
}

// NewArenaNode builds an inactive arena node. Hazard nodes also carry a
// HazardProp that ArenaNodeSystem arms while the group is active.
func NewArenaNode(w *ecs.World, cfg ArenaNodeConfig) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: cfg.Position, Scale: 1}); err != nil {
		return 0, fmt.Errorf("arena: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.ArenaNodeComponent.Kind(), &component.ArenaNode{
		Group:         cfg.Group,
		HazardEnabled: cfg.Hazard,
	}); err != nil {
		return 0, fmt.Errorf("arena: add node: %w", err)
	}
	if cfg.Hazard {
		if err := ecs.Add(w, e, component.HazardPropComponent.Kind(), &component.HazardProp{
			Width:  cfg.Width,
			Height: cfg.Height,
			Group:  cfg.Group,
		}); err != nil {
			return 0, fmt.Errorf("arena: add hazard: %w", err)
		}
	}

	return e, nil
}
