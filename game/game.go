// Package game wires an encounter document into a running boss rush: the
// entity world, the scheduler, one controller per phase and the sequencer.
package game

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/boss"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
	"github.com/milk9111/bossrush/ecs/system"
	"github.com/milk9111/bossrush/encounter"
	"github.com/milk9111/bossrush/prefabs"
	"github.com/milk9111/bossrush/routine"
)

type Options struct {
	// Seed overrides the document seed when non-zero.
	Seed     int64
	Sink     system.Sink
	Observer encounter.Observer
}

type Game struct {
	spec  *prefabs.EncounterSpec
	arena cp.Vector

	world    *ecs.World
	sched    *routine.Scheduler
	registry *encounter.Registry
	seq      *encounter.Sequencer
	player   *Player

	bosses   map[encounter.Phase]boss.Encounterable
	controls map[encounter.Phase]*ControlSet
	frames   int
}

func New(spec *prefabs.EncounterSpec, opts Options) (*Game, error) {
	if spec == nil {
		return nil, fmt.Errorf("game: nil encounter spec")
	}
	phases, err := spec.PhaseList()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	seed := spec.Seed
	if opts.Seed != 0 {
		seed = opts.Seed
	}
	sink := opts.Sink
	if sink == nil {
		sink = system.LogSink{}
	}
	arena := spec.Arena.Vector()
	if arena.X <= 0 || arena.Y <= 0 {
		arena = cp.Vector{X: 1280, Y: 720}
	}

	w := ecs.NewWorld()
	bus, err := entity.NewAudioBus(w)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	audio := system.NewAudioQueue(w, bus)

	w.AddSystem(system.NewAnimationSystem())
	w.AddSystem(system.NewMotionSystem())
	w.AddSystem(system.NewTTLSystem())
	w.AddSystem(system.NewArenaNodeSystem())
	w.AddSystem(system.NewCameraSystem(seed))
	w.AddSystem(system.NewAudioSystem(sink))

	g := &Game{
		spec:     spec,
		arena:    arena,
		world:    w,
		sched:    routine.NewScheduler(),
		registry: encounter.NewRegistry(w, audio),
		player:   &Player{pos: cp.Vector{X: arena.X / 2, Y: arena.Y - 100}},
		bosses:   make(map[encounter.Phase]boss.Encounterable, len(phases)),
		controls: make(map[encounter.Phase]*ControlSet, len(phases)),
	}
	svc := encounter.Services{
		Camera: system.NewCameraShaker(w),
		Audio:  audio,
		Mover:  system.NewMover(w),
		Player: g.player,
	}

	slots := make([]*encounter.PhaseSlot, 0, len(phases))
	for _, p := range phases {
		slot, err := g.buildPhase(p, seed, svc, opts.Observer)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	g.seq, err = encounter.NewSequencer(g.sched, slots, encounter.SequencerOptions{
		SettleDelay: spec.SettleDelay,
		Observer:    opts.Observer,
		Player:      g.player,
	})
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	for _, b := range g.bosses {
		b.SetProgression(g.seq)
	}
	return g, nil
}

func (g *Game) buildPhase(p encounter.Phase, seed int64, svc encounter.Services, obs encounter.Observer) (*encounter.PhaseSlot, error) {
	cfg, err := g.spec.BossConfig(p)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	cfg.Seed = seed + int64(p)*7919
	cfg.Arena = g.arena
	if cfg.Position == (cp.Vector{}) {
		cfg.Position = cp.Vector{X: g.arena.X / 2, Y: g.arena.Y * 0.2}
	}
	b, err := boss.New(cfg, boss.Deps{
		World:     g.world,
		Scheduler: g.sched,
		Registry:  g.registry,
		Services:  svc,
		Observer:  obs,
	})
	if err != nil {
		return nil, fmt.Errorf("game: %s: %w", p, err)
	}
	g.bosses[p] = b

	cam, err := entity.NewCamera(g.world, p.String(), g.arena.Mult(0.5))
	if err != nil {
		return nil, fmt.Errorf("game: %s: %w", p, err)
	}
	for _, node := range g.arenaLayout(p) {
		if _, err := entity.NewArenaNode(g.world, node); err != nil {
			return nil, fmt.Errorf("game: %s: %w", p, err)
		}
	}

	spawn := g.spec.Boss(p).Spawn.Vector()
	if spawn == (cp.Vector{}) {
		spawn = cp.Vector{X: g.arena.X / 2, Y: g.arena.Y - 100}
	}
	controls := &ControlSet{Name: p.String()}
	g.controls[p] = controls

	return &encounter.PhaseSlot{
		Phase:      p,
		Camera:     system.NewCameraToggle(g.world, cam),
		Arena:      system.NewArenaToggle(g.world, p.String()),
		Boss:       b,
		Controls:   []encounter.Toggle{controls},
		SpawnPoint: spawn,
	}, nil
}

// arenaLayout is a floor plus two corner pits per phase.
func (g *Game) arenaLayout(p encounter.Phase) []entity.ArenaNodeConfig {
	group := p.String()
	return []entity.ArenaNodeConfig{
		{Group: group, Position: cp.Vector{X: g.arena.X / 2, Y: g.arena.Y - 10}, Width: g.arena.X, Height: 20},
		{Group: group, Position: cp.Vector{X: 40, Y: g.arena.Y - 50}, Width: 60, Height: 60, Hazard: true},
		{Group: group, Position: cp.Vector{X: g.arena.X - 40, Y: g.arena.Y - 50}, Width: 60, Height: 60, Hazard: true},
	}
}

func (g *Game) Begin() { g.seq.Begin() }

// Update runs due routines, then the world systems.
func (g *Game) Update(dt float64) {
	g.frames++
	g.sched.Advance(dt)
	g.world.Update(dt)
	g.registry.Prune()
}

func (g *Game) Restart() { g.seq.Restart() }

// SkipPhase forces progress on the active boss.
func (g *Game) SkipPhase() error {
	b, ok := g.ActiveBoss()
	if !ok {
		return fmt.Errorf("game: skip phase: %w", encounter.ErrNotStarted)
	}
	return b.Gate().SkipPhase()
}

// HitWeakpoint hits the live weakpoint closest to the player.
func (g *Game) HitWeakpoint() bool {
	b, ok := g.ActiveBoss()
	if !ok {
		return false
	}
	var (
		best *encounter.Weakpoint
		dist float64
	)
	for _, wp := range b.Weakpoints() {
		tr, ok := g.Transform(wp.Entity())
		if !ok {
			continue
		}
		d := tr.Position.Sub(g.player.pos).LengthSq()
		if best == nil || d < dist {
			best, dist = wp, d
		}
	}
	return best != nil && best.RegisterHit()
}

// Damage deals direct damage to the active boss.
func (g *Game) Damage(amount int) bool {
	b, ok := g.ActiveBoss()
	if !ok {
		return false
	}
	return b.Gate().DealDamage(amount)
}

func (g *Game) ActiveBoss() (boss.Encounterable, bool) {
	if !g.seq.Active() {
		return nil, false
	}
	p, _ := g.seq.Current()
	b, ok := g.bosses[p]
	return b, ok
}

func (g *Game) Boss(p encounter.Phase) (boss.Encounterable, bool) {
	b, ok := g.bosses[p]
	return b, ok
}

func (g *Game) Controls(p encounter.Phase) *ControlSet { return g.controls[p] }

func (g *Game) Current() (encounter.Phase, encounter.SubPhase) { return g.seq.Current() }
func (g *Game) Done() bool { return g.seq.Done() }
func (g *Game) Time() float64 { return g.sched.Now() }
func (g *Game) Frames() int { return g.frames }
func (g *Game) Arena() cp.Vector { return g.arena }
func (g *Game) Spec() *prefabs.EncounterSpec { return g.spec }
func (g *Game) World() *ecs.World { return g.world }
func (g *Game) Registry() *encounter.Registry { return g.registry }
func (g *Game) Sequencer() *encounter.Sequencer { return g.seq }
func (g *Game) Player() *Player { return g.player }

func (g *Game) Transform(e ecs.Entity) (*component.Transform, bool) {
	return ecs.Get(g.world, e, component.TransformComponent.Kind())
}
