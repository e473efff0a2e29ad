package encounter

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

// Phase is one boss arena of the encounter.
type Phase int

const (
	PhaseDJ Phase = iota
	PhaseGuitar
	PhaseMouth
	PhaseScorpion
	PhaseMinotaur

	PhaseCount
)

var phaseNames = [PhaseCount]string{"dj", "guitar", "mouth", "scorpion", "minotaur"}

func (p Phase) Valid() bool {
	return p >= 0 && p < PhaseCount
}

func (p Phase) String() string {
	if !p.Valid() {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// ParsePhase accepts the lower-case names used by encounter specs.
func ParsePhase(name string) (Phase, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("encounter: parse phase %q: %w", name, ErrInvalidPhase)
}

// SubPhase is the difficulty tier within a phase. Tiers only move forward
// during an encounter.
type SubPhase int

const (
	Tutorial SubPhase = iota
	Easy
	Normal
)

func (s SubPhase) String() string {
	switch s {
	case Tutorial:
		return "tutorial"
	case Easy:
		return "easy"
	case Normal:
		return "normal"
	default:
		return fmt.Sprintf("subphase(%d)", int(s))
	}
}

// Record maps each known phase to its current tier.
type Record struct {
	subs  [PhaseCount]SubPhase
	known [PhaseCount]bool
}

func (r *Record) Reset(phases []Phase) {
	*r = Record{}
	for _, p := range phases {
		if p.Valid() {
			r.known[p] = true
		}
	}
}

func (r Record) Known(p Phase) bool {
	return p.Valid() && r.known[p]
}

func (r Record) Get(p Phase) (SubPhase, bool) {
	if !r.Known(p) {
		return Tutorial, false
	}
	return r.subs[p], true
}

func (r *Record) set(p Phase, sub SubPhase) {
	if !r.Known(p) {
		return
	}
	r.subs[p] = sub
}

// PhaseSlot is everything the sequencer swaps when a phase becomes active.
type PhaseSlot struct {
	Phase      Phase
	Camera     Toggle
	Arena      Toggle
	Boss       Boss
	Controls   []Toggle
	SpawnPoint cp.Vector
}
