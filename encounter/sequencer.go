package encounter

import (
	"fmt"
	"log"

	"github.com/milk9111/bossrush/routine"
)

const defaultSettleDelay = 1.0

type SequencerOptions struct {
	// SettleDelay is the pause between Begin and the first activation.
	SettleDelay float64
	Observer    Observer
	Player      Placer
}

type promotion struct {
	phase Phase
	tick  uint64
	valid bool
}

// Sequencer walks the ordered phase list, promoting each phase through its
// tiers before moving to the next.
type Sequencer struct {
	slots   []*PhaseSlot
	order   []Phase
	sched   *routine.Scheduler
	opts    SequencerOptions
	token   *routine.Token
	record  Record
	active  *PhaseSlot
	index   int
	done    bool
	last    promotion
	pending *pendingTransition
	// held is set while a same-tick promotion waits for the next tick.
	held    bool
}

type pendingTransition struct {
	phase Phase
	sub   SubPhase
}

func NewSequencer(sched *routine.Scheduler, slots []*PhaseSlot, opts SequencerOptions) (*Sequencer, error) {
	if len(slots) == 0 {
		return nil, fmt.Errorf("sequencer: no phases: %w", ErrInvalidPhase)
	}
	s := &Sequencer{sched: sched, opts: opts, index: -1}
	seen := make(map[Phase]bool, len(slots))
	for i, slot := range slots {
		if slot == nil || !slot.Phase.Valid() {
			return nil, fmt.Errorf("sequencer: slot %d: %w", i, ErrInvalidPhase)
		}
		if seen[slot.Phase] {
			return nil, fmt.Errorf("sequencer: duplicate phase %s: %w", slot.Phase, ErrInvalidPhase)
		}
		seen[slot.Phase] = true
		s.slots = append(s.slots, slot)
		s.order = append(s.order, slot.Phase)
	}
	if s.opts.SettleDelay <= 0 {
		s.opts.SettleDelay = defaultSettleDelay
	}
	s.record.Reset(s.order)
	return s, nil
}

func (s *Sequencer) emit(t EventType, phase Phase, sub SubPhase, detail string) {
	if s.opts.Observer == nil {
		return
	}
	evt := Event{Type: t, Time: s.sched.Now(), Detail: detail}
	if phase.Valid() {
		evt.Phase = phase.String()
		evt.SubPhase = sub.String()
	}
	s.opts.Observer(evt)
}

// Begin hides every phase, resets the record to tutorial and activates the
// first phase after the settle delay.
func (s *Sequencer) Begin() {
	if s.token != nil {
		s.token.Revoke()
	}
	s.token = routine.NewToken("sequencer")
	for _, slot := range s.slots {
		setActive(slot.Camera, false)
		setActive(slot.Arena, false)
		for _, c := range slot.Controls {
			setActive(c, false)
		}
	}
	s.record.Reset(s.order)
	s.active = nil
	s.index = -1
	s.done = false
	s.last = promotion{}
	s.pending = nil
	s.held = false
	s.emit(EventBegin, -1, Tutorial, "")

	first := s.slots[0].Phase
	s.sched.After(s.token, s.opts.SettleDelay, func() {
		if err := s.TransitionTo(first, Tutorial); err != nil {
			log.Printf("sequencer: begin: %v", err)
		}
	})
}

// Advance promotes the current phase one tier, or moves to the next phase
// once the current one is complete.
func (s *Sequencer) Advance() error {
	if s.done {
		return ErrNoMorePhases
	}
	if s.active == nil {
		return fmt.Errorf("sequencer: advance: %w", ErrNotStarted)
	}

	cur := s.active.Phase
	sub, _ := s.record.Get(cur)
	switch sub {
	case Tutorial:
		return s.promote(cur, Easy)
	case Easy:
		if s.last.valid && s.last.phase == cur && s.last.tick == s.sched.Tick() {
			log.Printf("sequencer: %s already promoted this tick, holding until the next", cur)
			s.holdPromotion(cur)
			return nil
		}
		return s.promote(cur, Normal)
	}

	next := s.index + 1
	if next >= len(s.slots) {
		s.done = true
		log.Printf("sequencer: advance past %s: %v", cur, ErrNoMorePhases)
		s.emit(EventNoMorePhases, cur, sub, "")
		return ErrNoMorePhases
	}
	phase := s.slots[next].Phase
	nextSub, _ := s.record.Get(phase)
	return s.TransitionTo(phase, nextSub)
}

// holdPromotion retries a same-tick easy to normal promotion on a later
// tick. Repeated requests while one is held collapse into it.
func (s *Sequencer) holdPromotion(phase Phase) {
	if s.held {
		return
	}
	s.held = true
	tick := s.sched.Tick()
	s.sched.Every(s.token, func() bool {
		if s.sched.Tick() == tick {
			return false
		}
		s.held = false
		if s.active == nil || s.active.Phase != phase {
			return true
		}
		if sub, _ := s.record.Get(phase); sub != Easy {
			return true
		}
		if err := s.promote(phase, Normal); err != nil {
			log.Printf("sequencer: held promotion: %v", err)
		}
		return true
	})
}

func (s *Sequencer) promote(phase Phase, sub SubPhase) error {
	if err := s.TransitionTo(phase, sub); err != nil {
		return err
	}
	s.last = promotion{phase: phase, tick: s.sched.Tick(), valid: true}
	return nil
}

// TransitionTo activates phase at sub. Tiers never move backwards; asking
// for a lower tier than recorded resumes at the recorded one.
func (s *Sequencer) TransitionTo(phase Phase, sub SubPhase) error {
	if sub < Tutorial || sub > Normal {
		err := fmt.Errorf("sequencer: transition to %s: %s: %w", phase, sub, ErrInvalidPhase)
		log.Print(err)
		s.emit(EventError, -1, Tutorial, err.Error())
		return err
	}
	idx := s.indexOf(phase)
	if idx < 0 {
		err := fmt.Errorf("sequencer: transition to %s: %w", phase, ErrInvalidPhase)
		log.Print(err)
		s.emit(EventError, -1, sub, err.Error())
		return err
	}
	slot := s.slots[idx]
	if slot.Boss == nil {
		err := fmt.Errorf("sequencer: transition to %s: %w", phase, ErrMissingBossReference)
		log.Print(err)
		s.emit(EventError, phase, sub, err.Error())
		return err
	}

	if s.active != nil {
		if g, ok := s.active.Boss.(TransitionGate); ok && !g.CanTransition() {
			log.Printf("sequencer: transition to %s %s held by %s", phase, sub, s.active.Phase)
			s.emit(EventTransitionVetoed, phase, sub, s.active.Phase.String())
			s.deferTransition(phase, sub, g)
			return ErrTransitionVetoed
		}
	}

	if recorded, _ := s.record.Get(phase); recorded > sub {
		sub = recorded
	}

	if s.active == slot {
		prev, _ := s.record.Get(phase)
		s.record.set(phase, sub)
		if prev != sub {
			log.Printf("sequencer: %s %s -> %s", phase, prev, sub)
			s.emit(EventSubPhaseChanged, phase, sub, "")
			slot.Boss.StartBoss(sub)
		}
		return nil
	}

	out := s.active
	if out != nil {
		out.Boss.PhaseEnded()
		setActive(out.Camera, false)
		setActive(out.Arena, false)
	}
	setActive(slot.Camera, true)
	setActive(slot.Arena, true)
	if out != nil {
		for _, c := range out.Controls {
			setActive(c, false)
		}
	}
	for _, c := range slot.Controls {
		setActive(c, true)
	}
	if s.opts.Player != nil {
		s.opts.Player.Place(slot.SpawnPoint)
	}

	s.active = slot
	s.index = idx
	s.record.set(phase, sub)
	log.Printf("sequencer: entering %s at %s", phase, sub)
	s.emit(EventPhaseChanged, phase, sub, "")
	slot.Boss.StartBoss(sub)
	return nil
}

// deferTransition retries a vetoed transition once the gate opens. Only the
// latest vetoed request is kept.
func (s *Sequencer) deferTransition(phase Phase, sub SubPhase, g TransitionGate) {
	first := s.pending == nil
	s.pending = &pendingTransition{phase: phase, sub: sub}
	if !first {
		return
	}
	tok := s.token
	s.sched.Run(tok, routine.Until(g.CanTransition), func() {
		p := s.pending
		s.pending = nil
		if p == nil {
			return
		}
		if err := s.TransitionTo(p.phase, p.sub); err != nil {
			log.Printf("sequencer: deferred transition: %v", err)
		}
	})
}

// Restart tears down the active phase and begins again from tutorial.
func (s *Sequencer) Restart() {
	if s.active != nil {
		s.active.Boss.PhaseEnded()
	}
	log.Print("sequencer: restart")
	s.Begin()
	s.emit(EventRestart, -1, Tutorial, "")
}

func (s *Sequencer) indexOf(phase Phase) int {
	for i, slot := range s.slots {
		if slot.Phase == phase {
			return i
		}
	}
	return -1
}

// Current is the active phase and tier. Before the first activation it
// reports the first phase at tutorial.
func (s *Sequencer) Current() (Phase, SubPhase) {
	if s.active == nil {
		return s.slots[0].Phase, Tutorial
	}
	sub, _ := s.record.Get(s.active.Phase)
	return s.active.Phase, sub
}

// Active reports whether a phase has been activated since Begin.
func (s *Sequencer) Active() bool { return s.active != nil }

func (s *Sequencer) Record() Record { return s.record }

func (s *Sequencer) Done() bool { return s.done }

func (s *Sequencer) Phases() []Phase { return append([]Phase(nil), s.order...) }

// Slot returns the slot of phase.
func (s *Sequencer) Slot(phase Phase) (*PhaseSlot, bool) {
	if idx := s.indexOf(phase); idx >= 0 {
		return s.slots[idx], true
	}
	return nil, false
}
