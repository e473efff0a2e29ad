package entity

import (
	"fmt"

	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

// NewAudioBus builds the single entity that collects sound requests.
func NewAudioBus(w *ecs.World) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.AudioComponent.Kind(), &component.Audio{}); err != nil {
		return 0, fmt.Errorf("audio: add audio: %w", err)
	}
	return e, nil
}
