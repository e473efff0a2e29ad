package game

import (
	"errors"
	"testing"

	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/system"
	"github.com/milk9111/bossrush/encounter"
	"github.com/milk9111/bossrush/prefabs"
)

type countSink struct {
	played int
}

func (s *countSink) Play(component.SoundRequest) { s.played++ }

type recorder struct {
	events []encounter.Event
}

func (r *recorder) observe(e encounter.Event) { r.events = append(r.events, e) }

func (r *recorder) of(t encounter.EventType) []encounter.Event {
	var out []encounter.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func newGame(t *testing.T) (*Game, *recorder, *countSink) {
	t.Helper()
	spec, err := prefabs.LoadEncounterSpec("")
	if err != nil {
		t.Fatalf("LoadEncounterSpec: %v", err)
	}
	rec := &recorder{}
	sink := &countSink{}
	g, err := New(spec, Options{Seed: 11, Sink: sink, Observer: rec.observe})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, rec, sink
}

func (g *Game) run(seconds float64) {
	for t := 0.0; t < seconds-1e-9; t += 0.1 {
		g.Update(0.1)
	}
}

func TestBeginActivatesFirstPhase(t *testing.T) {
	g, _, _ := newGame(t)
	if err := g.SkipPhase(); !errors.Is(err, encounter.ErrNotStarted) {
		t.Fatalf("SkipPhase before begin: %v", err)
	}

	g.Begin()
	g.run(1.1)

	phase, sub := g.Current()
	if phase != encounter.PhaseDJ || sub != encounter.Tutorial {
		t.Fatalf("current = %s %s", phase, sub)
	}
	b, ok := g.ActiveBoss()
	if !ok || b.State() != "tutorial" {
		t.Fatalf("active boss not in tutorial")
	}
	_, cam, ok := system.ActiveCamera(g.World())
	if !ok || cam.Name != "dj" {
		t.Fatalf("active camera = %v", cam)
	}
	for _, p := range g.Sequencer().Phases() {
		if got, want := g.Controls(p).Active(), p == encounter.PhaseDJ; got != want {
			t.Fatalf("%s controls active = %t", p, got)
		}
	}
	if g.Player().Placed() != 1 {
		t.Fatalf("player placed %d times", g.Player().Placed())
	}
}

func TestSkipThroughEveryPhase(t *testing.T) {
	g, rec, _ := newGame(t)
	g.Begin()
	g.run(1.1)

	for i := 0; i < 3000 && !g.Done(); i++ {
		if i%10 == 0 {
			_ = g.SkipPhase()
		}
		g.Update(0.1)
	}
	if !g.Done() {
		phase, sub := g.Current()
		t.Fatalf("encounter stuck at %s %s", phase, sub)
	}

	changed := rec.of(encounter.EventPhaseChanged)
	want := g.Sequencer().Phases()
	if len(changed) != len(want) {
		t.Fatalf("phase changes = %d, want %d", len(changed), len(want))
	}
	for i, e := range changed {
		if e.Phase != want[i].String() || e.SubPhase != "tutorial" {
			t.Fatalf("change %d = %s %s", i, e.Phase, e.SubPhase)
		}
	}
	if n := len(rec.of(encounter.EventSubPhaseChanged)); n != 2*len(want) {
		t.Fatalf("sub phase changes = %d, want %d", n, 2*len(want))
	}
	if n := len(rec.of(encounter.EventNoMorePhases)); n != 1 {
		t.Fatalf("no more phases reported %d times", n)
	}
	for _, p := range want {
		if sub, _ := g.Sequencer().Record().Get(p); sub != encounter.Normal {
			t.Fatalf("%s recorded at %s", p, sub)
		}
	}
}

func TestCrossingInPromotionTickStillProgresses(t *testing.T) {
	g, _, _ := newGame(t)
	g.Begin()
	g.run(1.1)

	if err := g.SkipPhase(); err != nil {
		t.Fatalf("SkipPhase: %v", err)
	}
	b, _ := g.ActiveBoss()
	if !b.Gate().DealDamage(b.Gate().Health()) {
		t.Fatalf("full damage did not cross a tier")
	}
	if _, sub := g.Current(); sub != encounter.Easy {
		t.Fatalf("sub = %s, want easy within the promotion tick", sub)
	}

	g.Update(0.1)
	if phase, sub := g.Current(); phase != encounter.PhaseDJ || sub != encounter.Normal {
		t.Fatalf("current = %s %s, want dj normal on the next tick", phase, sub)
	}
	if !b.Gate().Damageable() {
		t.Fatalf("gate not re-armed at normal")
	}

	for i := 0; i < 600; i++ {
		if phase, _ := g.Current(); phase != encounter.PhaseDJ {
			return
		}
		g.HitWeakpoint()
		g.Damage(100)
		g.Update(0.1)
	}
	phase, sub := g.Current()
	t.Fatalf("encounter stalled at %s %s, gate armed=%t health=%d", phase, sub, b.Gate().Damageable(), b.Gate().Health())
}

func TestHitWeakpointClearsTutorial(t *testing.T) {
	g, _, sink := newGame(t)
	g.Begin()
	g.run(1.1)

	for i := 0; i < 100; i++ {
		if _, sub := g.Current(); sub != encounter.Tutorial {
			break
		}
		g.HitWeakpoint()
		g.run(0.2)
	}
	phase, sub := g.Current()
	if phase != encounter.PhaseDJ || sub != encounter.Easy {
		t.Fatalf("current = %s %s, want dj easy", phase, sub)
	}
	b, _ := g.ActiveBoss()
	if !b.Gate().Damageable() {
		t.Fatalf("gate not armed at easy")
	}
	g.Damage(1)
	if b.Gate().Health() != b.Gate().Total()-1 {
		t.Fatalf("direct damage not applied")
	}
	if sink.played == 0 {
		t.Fatalf("no sound reached the sink")
	}
}

func TestRestartReturnsToTutorial(t *testing.T) {
	g, rec, _ := newGame(t)
	g.Begin()
	g.run(1.1)
	_ = g.SkipPhase()
	g.run(1)
	_ = g.SkipPhase()
	g.run(1)
	if _, sub := g.Current(); sub != encounter.Normal {
		t.Fatalf("sub = %s before restart", sub)
	}

	g.Restart()
	if len(rec.of(encounter.EventRestart)) != 1 {
		t.Fatalf("restart not reported")
	}
	dj, _ := g.Boss(encounter.PhaseDJ)
	if dj.State() != "torn_down" {
		t.Fatalf("dj state = %s after restart", dj.State())
	}
	g.run(1.1)
	phase, sub := g.Current()
	if phase != encounter.PhaseDJ || sub != encounter.Tutorial {
		t.Fatalf("current = %s %s after restart", phase, sub)
	}
	if g.Registry().Len() != len(dj.Weakpoints()) {
		t.Fatalf("registry holds %d, want only the %d tutorial weakpoints", g.Registry().Len(), len(dj.Weakpoints()))
	}
}

func TestNewRejectsBadSpec(t *testing.T) {
	if _, err := New(nil, Options{}); err == nil {
		t.Fatalf("nil spec accepted")
	}
	spec := &prefabs.EncounterSpec{Phases: []string{"dj", "dj"}}
	if _, err := New(spec, Options{}); !errors.Is(err, encounter.ErrInvalidPhase) {
		t.Fatalf("err = %v, want ErrInvalidPhase", err)
	}
}
