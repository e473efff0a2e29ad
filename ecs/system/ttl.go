package system

import (
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

// TTLSystem counts down TTL components and destroys entities when the TTL
// reaches zero, pushing an ecs.EventExpired for each.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Seconds -= dt
		if ttl.Seconds > 0 {
			return
		}

		ecs.DestroyEntity(w, e)
		w.Events().Push(ecs.Event{Type: ecs.EventExpired, Entity: e})
	})
}
