package boss

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/system"
	"github.com/milk9111/bossrush/encounter"
	"github.com/milk9111/bossrush/routine"
)

type recAudio struct {
	clips []string
}

func (a *recAudio) PlaySound(clip string, _, _ float64, _ bool) {
	a.clips = append(a.clips, clip)
}

func (a *recAudio) played(clip string) int {
	n := 0
	for _, c := range a.clips {
		if c == clip {
			n++
		}
	}
	return n
}

type recCamera struct {
	shakes, smooth int
}

func (c *recCamera) Shake(float64, float64)       { c.shakes++ }
func (c *recCamera) SmoothShake(float64, float64) { c.smooth++ }

type fakeProgress struct {
	phase    encounter.Phase
	sub      encounter.SubPhase
	advances int
}

func (p *fakeProgress) Advance() error {
	p.advances++
	return nil
}

func (p *fakeProgress) Current() (encounter.Phase, encounter.SubPhase) { return p.phase, p.sub }

type env struct {
	w      *ecs.World
	sched  *routine.Scheduler
	reg    *encounter.Registry
	audio  *recAudio
	camera *recCamera
	prog   *fakeProgress
}

func newEnv() *env {
	w := ecs.NewWorld()
	audio := &recAudio{}
	return &env{
		w:      w,
		sched:  routine.NewScheduler(),
		reg:    encounter.NewRegistry(w, audio),
		audio:  audio,
		camera: &recCamera{},
		prog:   &fakeProgress{},
	}
}

func (e *env) deps() Deps {
	return Deps{
		World:     e.w,
		Scheduler: e.sched,
		Registry:  e.reg,
		Services: encounter.Services{
			Camera: e.camera,
			Audio:  e.audio,
			Mover:  system.NewMover(e.w),
		},
	}
}

// step advances the scheduler in small ticks for seconds.
func (e *env) step(seconds float64) {
	for t := 0.0; t < seconds-1e-9; t += 0.1 {
		e.sched.Advance(0.1)
	}
}

func (e *env) projectiles() int {
	return ecs.Count(e.w, component.ProjectileComponent.Kind())
}

func (e *env) hazards() int {
	return ecs.Count(e.w, component.HazardPropComponent.Kind())
}

func testConfig(phase encounter.Phase) Config {
	return Config{
		Phase:    phase,
		Position: cp.Vector{X: 640, Y: 120},
		Seed:     1,
		Weakpoints: WeakpointPolicy{
			Required:     2,
			Health:       1,
			RespawnDelay: 1,
			ExtraDelay:   2,
			DeliveryTime: 0.5,
			HitSound:     "wp_hit",
			DeathSound:   "wp_death",
		},
	}
}

// quiet keeps the attack loop from starting on its own.
func quiet(cfg Config) Config {
	cfg.Profile.Durations = map[string]float64{"initial_cooldown": 1000}
	return cfg
}

func kill(wp *encounter.Weakpoint) {
	for wp.RegisterHit() && wp.Alive() {
	}
}

func countExtra(wps []*encounter.Weakpoint) int {
	n := 0
	for _, wp := range wps {
		if wp.Extra() {
			n++
		}
	}
	return n
}
