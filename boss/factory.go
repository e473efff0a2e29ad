package boss

import (
	"fmt"

	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/encounter"
)

// Encounterable is what the game wires into a phase slot.
type Encounterable interface {
	encounter.Boss
	SetProgression(p encounter.Progression)
	Name() string
	Phase() encounter.Phase
	Gate() *encounter.Gate
	Weakpoints() []*encounter.Weakpoint
	Body() ecs.Entity
	State() string
}

// New builds the variant for cfg.Phase.
func New(cfg Config, deps Deps) (Encounterable, error) {
	switch cfg.Phase {
	case encounter.PhaseDJ:
		return NewDJ(cfg, deps)
	case encounter.PhaseGuitar:
		return NewGuitar(cfg, deps)
	case encounter.PhaseMouth:
		return NewMouth(cfg, deps)
	case encounter.PhaseScorpion:
		return NewScorpion(cfg, deps)
	case encounter.PhaseMinotaur:
		return NewMinotaur(cfg, deps)
	default:
		return nil, fmt.Errorf("boss: %w: %d", encounter.ErrInvalidPhase, int(cfg.Phase))
	}
}
