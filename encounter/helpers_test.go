package encounter

import (
	"fmt"

	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/routine"
)

type opLog struct {
	ops []string
}

func (l *opLog) add(format string, args ...any) {
	l.ops = append(l.ops, fmt.Sprintf(format, args...))
}

func (l *opLog) reset() {
	l.ops = nil
}

type fakeToggle struct {
	name   string
	log    *opLog
	active bool
}

func (t *fakeToggle) SetActive(active bool) {
	t.active = active
	t.log.add("%s:%t", t.name, active)
}

type fakeBoss struct {
	name   string
	log    *opLog
	starts []SubPhase
	ended  int
}

func (b *fakeBoss) StartBoss(sub SubPhase) {
	b.starts = append(b.starts, sub)
	b.log.add("%s:start:%s", b.name, sub)
}

func (b *fakeBoss) PhaseEnded() {
	b.ended++
	b.log.add("%s:ended", b.name)
}

type vetoBoss struct {
	*fakeBoss
	allow bool
}

func (b *vetoBoss) CanTransition() bool { return b.allow }

type fakeAudio struct {
	clips []string
}

func (a *fakeAudio) PlaySound(clip string, _, _ float64, _ bool) {
	a.clips = append(a.clips, clip)
}

type fakeProgression struct {
	phase    Phase
	sub      SubPhase
	advances int
}

func (p *fakeProgression) Advance() error {
	p.advances++
	if p.sub < Normal {
		p.sub++
	}
	return nil
}

func (p *fakeProgression) Current() (Phase, SubPhase) { return p.phase, p.sub }

type fixture struct {
	sched   *routine.Scheduler
	seq     *Sequencer
	log     *opLog
	bosses  map[Phase]*fakeBoss
	cameras map[Phase]*fakeToggle
	events  []Event
}

func newFixture(phases ...Phase) *fixture {
	f := &fixture{
		sched:   routine.NewScheduler(),
		log:     &opLog{},
		bosses:  make(map[Phase]*fakeBoss),
		cameras: make(map[Phase]*fakeToggle),
	}
	var slots []*PhaseSlot
	for _, p := range phases {
		boss := &fakeBoss{name: p.String(), log: f.log}
		cam := &fakeToggle{name: p.String() + ".cam", log: f.log}
		f.bosses[p] = boss
		f.cameras[p] = cam
		slots = append(slots, &PhaseSlot{
			Phase:    p,
			Camera:   cam,
			Arena:    &fakeToggle{name: p.String() + ".arena", log: f.log},
			Boss:     boss,
			Controls: []Toggle{&fakeToggle{name: p.String() + ".ctl", log: f.log}},
		})
	}
	seq, err := NewSequencer(f.sched, slots, SequencerOptions{
		SettleDelay: 0.5,
		Observer:    func(e Event) { f.events = append(f.events, e) },
	})
	if err != nil {
		panic(err)
	}
	f.seq = seq
	return f
}

// started begins the encounter and runs past the settle delay.
func (f *fixture) started() *fixture {
	f.seq.Begin()
	f.sched.Advance(0.5)
	return f
}

func (f *fixture) count(t EventType) int {
	n := 0
	for _, e := range f.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func worldWithRegistry() (*ecs.World, *Registry, *fakeAudio) {
	w := ecs.NewWorld()
	audio := &fakeAudio{}
	return w, NewRegistry(w, audio), audio
}
