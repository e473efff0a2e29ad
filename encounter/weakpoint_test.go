package encounter

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/routine"
)

type weakpointRig struct {
	w      *ecs.World
	sched  *routine.Scheduler
	tok    *routine.Token
	reg    *Registry
	audio  *fakeAudio
	deaths int
	expiry int
}

func newWeakpointRig() *weakpointRig {
	w, reg, audio := worldWithRegistry()
	return &weakpointRig{w: w, sched: routine.NewScheduler(), tok: routine.NewToken("boss"), reg: reg, audio: audio}
}

func (r *weakpointRig) spawn(t *testing.T, cfg WeakpointConfig) *Weakpoint {
	t.Helper()
	wp, err := NewWeakpoint(r.w, r.sched, r.tok, r.reg, Services{Audio: r.audio}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	wp.OnDeath(func(*Weakpoint) { r.deaths++ })
	wp.OnExpire(func(*Weakpoint) { r.expiry++ })
	return wp
}

func (r *weakpointRig) run(seconds float64) {
	for t := 0.0; t < seconds; t += 0.1 {
		r.sched.Advance(0.1)
	}
}

func TestWeakpointDeathFiresOnceAfterDelivery(t *testing.T) {
	tests := []struct {
		name   string
		health int
	}{
		{"one_hit", 1},
		{"three_hits", 3},
		{"five_hits", 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newWeakpointRig()
			target := cp.Vector{X: 100, Y: 0}
			wp := r.spawn(t, WeakpointConfig{
				Owner:        "dj",
				Health:       tc.health,
				Lifetime:     30,
				Target:       target,
				DeliveryTime: 0.5,
				HitSound:     "hit",
			})

			for i := 0; i < tc.health; i++ {
				if !wp.RegisterHit() {
					t.Fatalf("hit %d rejected", i)
				}
			}
			if wp.RegisterHit() {
				t.Fatalf("dying weakpoint accepted a hit")
			}
			if col, ok := ecs.Get(r.w, wp.Entity(), component.ColliderComponent.Kind()); !ok || col.Enabled {
				t.Fatalf("expected collider disabled while dying")
			}
			if r.deaths != 0 {
				t.Fatalf("death fired before delivery finished")
			}
			if len(r.audio.clips) != tc.health-1 {
				t.Fatalf("expected %d hit feedbacks, got %d", tc.health-1, len(r.audio.clips))
			}

			r.run(1)
			if r.deaths != 1 || r.expiry != 0 {
				t.Fatalf("expected death=1 expiry=0, got death=%d expiry=%d", r.deaths, r.expiry)
			}
			if ecs.IsAlive(r.w, wp.Entity()) || r.reg.Contains(wp.Entity()) {
				t.Fatalf("expected weakpoint removed after death")
			}

			r.run(60)
			if r.deaths != 1 || r.expiry != 0 {
				t.Fatalf("events fired again: death=%d expiry=%d", r.deaths, r.expiry)
			}
		})
	}
}

func TestWeakpointDeliveryMovesToTarget(t *testing.T) {
	r := newWeakpointRig()
	var at cp.Vector
	wp := r.spawn(t, WeakpointConfig{Position: cp.Vector{}, Target: cp.Vector{X: 10, Y: 20}, DeliveryTime: 1})
	wp.OnDeath(func(wp *Weakpoint) {
		tr, _ := ecs.Get(r.w, wp.Entity(), component.TransformComponent.Kind())
		at = tr.Position
	})
	wp.RegisterHit()
	r.run(2)
	if at.X != 10 || at.Y != 20 {
		t.Fatalf("expected payload at target, got %v", at)
	}
}

func TestWeakpointLifetime(t *testing.T) {
	tests := []struct {
		name       string
		exempt     bool
		lifetime   float64
		wantExpiry int
	}{
		{"expires", false, 2, 1},
		{"exempt", true, 2, 0},
		{"no_lifetime", false, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newWeakpointRig()
			wp := r.spawn(t, WeakpointConfig{Health: 2, Lifetime: tc.lifetime})
			if tc.exempt {
				if err := wp.DisableLifetime(); err != nil {
					t.Fatal(err)
				}
			}
			r.run(10)
			if r.expiry != tc.wantExpiry || r.deaths != 0 {
				t.Fatalf("expected expiry=%d death=0, got expiry=%d death=%d", tc.wantExpiry, r.expiry, r.deaths)
			}
			if tc.wantExpiry == 1 && wp.RegisterHit() {
				t.Fatalf("expired weakpoint accepted a hit")
			}
		})
	}
}

func TestDisableLifetimeAfterFinish(t *testing.T) {
	r := newWeakpointRig()
	wp := r.spawn(t, WeakpointConfig{Health: 1, DeliveryTime: 1})
	wp.RegisterHit()
	if err := wp.DisableLifetime(); !errors.Is(err, ErrWeakpointFinished) {
		t.Fatalf("expected ErrWeakpointFinished, got %v", err)
	}
}

func TestWeakpointTeardownCancelsDelivery(t *testing.T) {
	r := newWeakpointRig()
	wp := r.spawn(t, WeakpointConfig{Health: 1, DeliveryTime: 1, Lifetime: 3})
	wp.RegisterHit()
	r.sched.Advance(0.2)

	r.tok.Revoke()
	r.reg.ClearOwner("")
	r.run(5)

	if r.deaths != 0 || r.expiry != 0 {
		t.Fatalf("expected no events after teardown, got death=%d expiry=%d", r.deaths, r.expiry)
	}
	if ecs.IsAlive(r.w, wp.Entity()) {
		t.Fatalf("expected entity gone after flush")
	}
}

func TestWeakpointRemoveIsSilent(t *testing.T) {
	r := newWeakpointRig()
	wp := r.spawn(t, WeakpointConfig{Health: 1, Lifetime: 1})
	wp.Remove()
	wp.Remove()
	r.run(3)
	if r.deaths != 0 || r.expiry != 0 || wp.State() != weakpointRemoved {
		t.Fatalf("unexpected state after remove: %s death=%d expiry=%d", wp.State(), r.deaths, r.expiry)
	}
}
