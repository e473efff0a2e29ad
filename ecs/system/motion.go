package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

// MotionSystem integrates Velocity into Transform.
type MotionSystem struct{}

func NewMotionSystem() *MotionSystem {
	return &MotionSystem{}
}

func (s *MotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(_ ecs.Entity, t *component.Transform, v *component.Velocity) {
		t.Position = t.Position.Add(v.Linear.Mult(dt))
	})
}

// Mover hands spawned entities off to MotionSystem.
type Mover struct {
	w *ecs.World
}

func NewMover(w *ecs.World) *Mover {
	return &Mover{w: w}
}

// Launch sets e moving at velocity. Entities without a Transform are ignored.
func (m *Mover) Launch(e ecs.Entity, velocity cp.Vector) {
	if m == nil || !ecs.Has(m.w, e, component.TransformComponent.Kind()) {
		return
	}
	if v, ok := ecs.Get(m.w, e, component.VelocityComponent.Kind()); ok {
		v.Linear = velocity
		return
	}
	_ = ecs.Add(m.w, e, component.VelocityComponent.Kind(), &component.Velocity{Linear: velocity})
}
