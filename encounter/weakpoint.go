package encounter

import (
	"context"
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/looplab/fsm"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
	"github.com/milk9111/bossrush/routine"
)

const (
	weakpointAlive    = "alive"
	weakpointDying    = "dying"
	weakpointExpiring = "expiring"
	weakpointRemoved  = "removed"
)

// WeakpointConfig describes one weakpoint spawn.
type WeakpointConfig struct {
	Owner        string
	Slot         int
	Position     cp.Vector
	Radius       float64
	Health       int
	Lifetime     float64 // zero or less never expires
	Target       cp.Vector
	DeliveryTime float64
	HitSound     string
	DeathSound   string
	HitAnim      string
	Extra        bool
}

// Weakpoint is a destructible target. Exactly one of the death and expiry
// callbacks fires per instance, and neither fires after Remove.
type Weakpoint struct {
	cfg    WeakpointConfig
	entity ecs.Entity
	health int
	hits   int
	exempt bool

	state *fsm.FSM
	w     *ecs.World
	sched *routine.Scheduler
	tok   *routine.Token
	reg   *Registry
	svc   Services

	onDeath  []func(*Weakpoint)
	onExpire []func(*Weakpoint)
	fired    bool
}

// NewWeakpoint spawns the weakpoint body and registers it. Its lifetime and
// delivery run under a child of tok.
func NewWeakpoint(w *ecs.World, sched *routine.Scheduler, tok *routine.Token, reg *Registry, svc Services, cfg WeakpointConfig) (*Weakpoint, error) {
	if cfg.Health <= 0 {
		cfg.Health = 1
	}
	e, err := entity.NewWeakpointBody(w, entity.WeakpointConfig{
		Owner:    cfg.Owner,
		Slot:     cfg.Slot,
		Position: cfg.Position,
		Radius:   cfg.Radius,
		Health:   cfg.Health,
		Extra:    cfg.Extra,
	})
	if err != nil {
		return nil, fmt.Errorf("weakpoint: spawn: %w", err)
	}

	wp := &Weakpoint{
		cfg:    cfg,
		entity: e,
		health: cfg.Health,
		w:      w,
		sched:  sched,
		tok:    tok.Child(fmt.Sprintf("weakpoint-%s", e)),
		reg:    reg,
		svc:    svc,
		state: fsm.NewFSM(weakpointAlive, fsm.Events{
			{Name: "die", Src: []string{weakpointAlive}, Dst: weakpointDying},
			{Name: "expire", Src: []string{weakpointAlive}, Dst: weakpointExpiring},
			{Name: "remove", Src: []string{weakpointAlive, weakpointDying, weakpointExpiring}, Dst: weakpointRemoved},
		}, fsm.Callbacks{}),
	}
	reg.Add(WeakpointHandle(wp))

	if cfg.Lifetime > 0 {
		sched.After(wp.tok, cfg.Lifetime, func() { wp.Expire() })
	}
	return wp, nil
}

func (wp *Weakpoint) Entity() ecs.Entity { return wp.entity }
func (wp *Weakpoint) Owner() string { return wp.cfg.Owner }
func (wp *Weakpoint) Slot() int { return wp.cfg.Slot }
func (wp *Weakpoint) Health() int { return wp.health }
func (wp *Weakpoint) Extra() bool { return wp.cfg.Extra }
func (wp *Weakpoint) State() string { return wp.state.Current() }
func (wp *Weakpoint) Alive() bool { return wp.state.Is(weakpointAlive) }
func (wp *Weakpoint) Exempt() bool { return wp.exempt }

// OnDeath adds a callback fired once the death delivery reaches its target.
func (wp *Weakpoint) OnDeath(fn func(*Weakpoint)) {
	if fn != nil {
		wp.onDeath = append(wp.onDeath, fn)
	}
}

// OnExpire adds a callback fired when the lifetime runs out.
func (wp *Weakpoint) OnExpire(fn func(*Weakpoint)) {
	if fn != nil {
		wp.onExpire = append(wp.onExpire, fn)
	}
}

// RegisterHit takes one hit. It reports false when the weakpoint is no
// longer hittable.
func (wp *Weakpoint) RegisterHit() bool {
	if !wp.Alive() || wp.tok.Revoked() {
		return false
	}

	wp.health--
	wp.hits++
	if tag, ok := ecs.Get(wp.w, wp.entity, component.WeakpointTagComponent.Kind()); ok {
		tag.Health = wp.health
	}
	if wp.health > 0 {
		wp.svc.play(wp.cfg.HitSound, 0.6, 1+0.1*float64(wp.hits))
		wp.svc.crossFade(wp.cfg.HitAnim, 0.1)
		return true
	}

	if err := wp.state.Event(context.Background(), "die"); err != nil {
		log.Printf("weakpoint: die: %v", err)
		return false
	}
	if col, ok := ecs.Get(wp.w, wp.entity, component.ColliderComponent.Kind()); ok {
		col.Enabled = false
	}
	if tag, ok := ecs.Get(wp.w, wp.entity, component.WeakpointTagComponent.Kind()); ok {
		tag.Dying = true
	}
	wp.svc.play(wp.cfg.DeathSound, 0.8, 1)

	from := wp.cfg.Position
	if tr, ok := ecs.Get(wp.w, wp.entity, component.TransformComponent.Kind()); ok {
		from = tr.Position
	}
	wp.sched.Run(wp.tok, routine.Tween(wp.cfg.DeliveryTime, func(t float64) {
		if tr, ok := ecs.Get(wp.w, wp.entity, component.TransformComponent.Kind()); ok {
			tr.Position = from.Lerp(wp.cfg.Target, t)
		}
	}), func() {
		wp.fire(wp.onDeath)
		wp.finish()
	})
	return true
}

// Expire ends an alive, non-exempt weakpoint through the expiry path.
func (wp *Weakpoint) Expire() bool {
	if wp.exempt || !wp.Alive() {
		return false
	}
	if err := wp.state.Event(context.Background(), "expire"); err != nil {
		log.Printf("weakpoint: expire: %v", err)
		return false
	}
	wp.fire(wp.onExpire)
	wp.finish()
	return true
}

// DisableLifetime exempts the weakpoint from expiry. It fails once the
// weakpoint has started dying or expiring.
func (wp *Weakpoint) DisableLifetime() error {
	if !wp.Alive() {
		return fmt.Errorf("weakpoint %s: disable lifetime: %w", wp.entity, ErrWeakpointFinished)
	}
	wp.exempt = true
	return nil
}

// Remove destroys the weakpoint without firing any callback.
func (wp *Weakpoint) Remove() {
	if wp.state.Is(weakpointRemoved) {
		return
	}
	wp.fired = true
	wp.finish()
}

func (wp *Weakpoint) fire(callbacks []func(*Weakpoint)) {
	if wp.fired {
		return
	}
	wp.fired = true
	for _, fn := range callbacks {
		fn(wp)
	}
}

func (wp *Weakpoint) finish() {
	wp.tok.Revoke()
	if !wp.state.Is(weakpointRemoved) {
		if err := wp.state.Event(context.Background(), "remove"); err != nil {
			log.Printf("weakpoint: remove: %v", err)
		}
	}
	wp.reg.Remove(wp.entity)
	ecs.DestroyEntity(wp.w, wp.entity)
}
