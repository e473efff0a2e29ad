package encounter

import (
	"fmt"
	"log"
	"math"
)

// Gate holds a boss health pool split into equal tiers. Dropping below a
// tier threshold flushes the registry and asks for one Advance.
type Gate struct {
	name     string
	total    int
	health   int
	phases   int
	crossed  int
	armed    bool
	registry *Registry
	progress Progression
	observe  Observer
	now      func() float64
}

func NewGate(name string, total, phases int, registry *Registry, progress Progression) *Gate {
	if total < 1 {
		total = 1
	}
	if phases < 1 {
		phases = 1
	}
	return &Gate{
		name:     name,
		total:    total,
		health:   total,
		phases:   phases,
		registry: registry,
		progress: progress,
	}
}

// SetProgression swaps the sequencer a gate reports to.
func (g *Gate) SetProgression(p Progression) { g.progress = p }

// SetObserver publishes threshold crossings. now stamps events and may be
// nil.
func (g *Gate) SetObserver(obs Observer, now func() float64) {
	g.observe = obs
	g.now = now
}

func (g *Gate) ToggleDamageable(on bool) { g.armed = on }
func (g *Gate) Damageable() bool { return g.armed }
func (g *Gate) Health() int { return g.health }
func (g *Gate) Total() int { return g.total }
func (g *Gate) Crossed() int { return g.crossed }

// Reset restores full health and disarms the gate.
func (g *Gate) Reset() {
	g.health = g.total
	g.crossed = 0
	g.armed = false
}

// Enter aligns the gate with a fight tier that starts after crossed
// crossings. Health is capped at the tier ceiling, and restored to it when a
// crossing was taken while the tier change was held off.
func (g *Gate) Enter(crossed int) {
	if crossed < 0 {
		crossed = 0
	}
	if crossed > g.phases-1 {
		crossed = g.phases - 1
	}
	g.crossed = crossed
	ceiling := g.total * (g.phases - crossed) / g.phases
	if g.health > ceiling || float64(g.health) <= g.Threshold() {
		g.health = ceiling
	}
}

// Threshold is the health at or below which the next crossing happens:
// total*(1-f) - crossed*total*f with f = 1/phases, evaluated as
// total*(phases-1-crossed)/phases to keep integer cases exact.
func (g *Gate) Threshold() float64 {
	return float64(g.total) * float64(g.phases-1-g.crossed) / float64(g.phases)
}

// DealDamage applies amount while armed. It reports whether a threshold was
// crossed.
func (g *Gate) DealDamage(amount int) bool {
	if !g.armed || amount < 0 {
		return false
	}
	return g.apply(amount)
}

// CritDamage is ceil(total / phases / 3), so three crits always clear one
// tier.
func (g *Gate) CritDamage() int {
	div := 3 * g.phases
	return (g.total + div - 1) / div
}

func (g *Gate) DealCritDamage() bool {
	return g.DealDamage(g.CritDamage())
}

// SkipPhase forces one tier worth of progress regardless of arming. In a
// tutorial tier it promotes straight to easy instead.
func (g *Gate) SkipPhase() error {
	if g.progress == nil {
		return fmt.Errorf("gate %s: skip phase: %w", g.name, ErrNotStarted)
	}
	if _, sub := g.progress.Current(); sub == Tutorial {
		return g.progress.Advance()
	}
	if g.crossed >= g.phases {
		return nil
	}
	target := int(math.Floor(g.Threshold()))
	if target < 0 {
		target = 0
	}
	amount := 0
	if g.health > target {
		amount = g.health - target
	}
	g.apply(amount)
	return nil
}

func (g *Gate) apply(amount int) bool {
	if g.crossed >= g.phases {
		return false
	}
	g.health -= amount
	if g.health < 0 {
		g.health = 0
	}
	if float64(g.health) > g.Threshold() {
		return false
	}

	g.crossed++
	g.armed = false
	log.Printf("gate: %s crossed tier %d/%d at %d/%d", g.name, g.crossed, g.phases, g.health, g.total)
	if g.observe != nil {
		t := 0.0
		if g.now != nil {
			t = g.now()
		}
		g.observe(Event{Type: EventThresholdCrossed, Time: t, Detail: fmt.Sprintf("%s %d/%d", g.name, g.crossed, g.phases)})
	}
	g.registry.ClearAll()
	if g.progress != nil {
		if err := g.progress.Advance(); err != nil {
			log.Printf("gate: %s advance: %v", g.name, err)
		}
	}
	return true
}
