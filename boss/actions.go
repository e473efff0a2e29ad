package boss

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
	"github.com/milk9111/bossrush/encounter"
	"github.com/milk9111/bossrush/routine"
)

// fire spawns a projectile, registers it, then launches it. Registration
// always comes before release.
func (c *Controller) fire(origin, dir cp.Vector, speed float64) {
	e, err := entity.NewProjectile(c.w, entity.ProjectileConfig{
		Owner:      c.cfg.Name,
		Position:   origin,
		Lifetime:   c.params.Duration("projectile_lifetime"),
		BreakSound: "projectile_break",
	})
	if err != nil {
		log.Printf("boss: %s fire: %v", c.cfg.Name, err)
		return
	}
	c.reg.Add(encounter.ProjectileHandle(e, c.cfg.Name))
	if c.svc.Mover != nil {
		c.svc.Mover.Launch(e, dir.Normalize().Mult(speed))
	}
}

// ring fires n projectiles evenly around origin, rotated by offset radians.
func (c *Controller) ring(origin cp.Vector, n int, offset, speed float64) {
	for i := 0; i < n; i++ {
		angle := offset + 2*math.Pi*float64(i)/float64(n)
		c.fire(origin, cp.ForAngle(angle), speed)
	}
}

// spread fires n projectiles fanned across arc radians around dir.
func (c *Controller) spread(origin, dir cp.Vector, n int, arc, speed float64) {
	if n <= 1 {
		c.fire(origin, dir, speed)
		return
	}
	base := dir.ToAngle() - arc/2
	for i := 0; i < n; i++ {
		c.fire(origin, cp.ForAngle(base+arc*float64(i)/float64(n-1)), speed)
	}
}

func (c *Controller) hazard(pos cp.Vector, width, height, lifetime float64) ecs.Entity {
	e, err := entity.NewHazardProp(c.w, entity.HazardConfig{
		Owner:    c.cfg.Name,
		Position: pos,
		Width:    width,
		Height:   height,
		Lifetime: lifetime,
	})
	if err != nil {
		log.Printf("boss: %s hazard: %v", c.cfg.Name, err)
		return 0
	}
	c.reg.Add(encounter.HazardHandle(e, c.cfg.Name))
	return e
}

func (c *Controller) rotate(e ecs.Entity, angle float64) {
	if tr, ok := ecs.Get(c.w, e, component.TransformComponent.Kind()); ok {
		tr.Rotation = angle
	}
}

// aim is the unit vector from the boss to the player, straight down when
// nobody is tracked.
func (c *Controller) aim(from cp.Vector) cp.Vector {
	if c.svc.Player == nil {
		return cp.Vector{X: 0, Y: 1}
	}
	d := c.svc.Player.Position().Sub(from)
	if d.LengthSq() < 1e-9 {
		return cp.Vector{X: 0, Y: 1}
	}
	return d.Normalize()
}

func (c *Controller) origin() cp.Vector {
	if tr, ok := ecs.Get(c.w, c.body, component.TransformComponent.Kind()); ok {
		return tr.Position
	}
	return c.cfg.Position
}

// setPart arms or disarms a persistent body part.
func (c *Controller) setPart(name string, armed bool) {
	e, ok := c.parts[name]
	if !ok {
		return
	}
	if col, ok := ecs.Get(c.w, e, component.ColliderComponent.Kind()); ok {
		col.Enabled = armed
	}
	if part, ok := ecs.Get(c.w, e, component.BossPartComponent.Kind()); ok {
		part.Visible = armed
	}
}

func (c *Controller) partArmed(name string) bool {
	col, ok := ecs.Get(c.w, c.parts[name], component.ColliderComponent.Kind())
	return ok && col.Enabled
}

func (c *Controller) partPosition(name string) cp.Vector {
	if tr, ok := ecs.Get(c.w, c.parts[name], component.TransformComponent.Kind()); ok {
		return tr.Position
	}
	return c.origin()
}

func (c *Controller) restoreParts() {
	for name := range c.parts {
		c.setPart(name, true)
	}
}

// column is the x of cell col in a grid of cols across the arena.
func (c *Controller) column(col, cols int) float64 {
	if cols <= 0 {
		return c.cfg.Arena.X / 2
	}
	return (float64(col) + 0.5) * c.cfg.Arena.X / float64(cols)
}

// Steps shared by every variant.

func (c *Controller) anim(state string) routine.Step {
	return routine.Call(func() { c.svc.Animator.CrossFade(state, 0.15) })
}

// play cross-fades to state and waits out its clip.
func (c *Controller) play(state string) routine.Step {
	return routine.Seq(
		c.anim(state),
		routine.WaitFor(func() float64 { return c.svc.Animator.ClipLength(state) }),
	)
}

func (c *Controller) sound(clip string) routine.Step {
	return routine.Call(func() {
		if c.svc.Audio != nil {
			c.svc.Audio.PlaySound(clip, 1, 1, false)
		}
	})
}

func (c *Controller) shake(intensity float64, duration string) routine.Step {
	return routine.Call(func() {
		if c.svc.Camera != nil {
			c.svc.Camera.Shake(intensity, c.params.Duration(duration))
		}
	})
}

func (c *Controller) smoothShake(intensity float64, duration string) routine.Step {
	return routine.Call(func() {
		if c.svc.Camera != nil {
			c.svc.Camera.SmoothShake(intensity, c.params.Duration(duration))
		}
	})
}

func (c *Controller) wait(duration string) routine.Step {
	return routine.WaitFor(func() float64 { return c.params.Duration(duration) })
}

// cells returns the columns marked 'x' in row.
func cells(row string) []int {
	var out []int
	for i, r := range row {
		if r == 'x' || r == 'X' {
			out = append(out, i)
		}
	}
	return out
}
