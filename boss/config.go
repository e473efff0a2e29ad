package boss

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/encounter"
	"github.com/milk9111/bossrush/routine"
)

// Selection picks how the attack loop chooses its next attack.
type Selection int

const (
	SelectRandom Selection = iota
	SelectPattern
)

// Pattern is one entry of a pattern queue. Rows is a grid where 'x' marks an
// active cell.
type Pattern struct {
	Name   string
	Attack string
	Rows   []string
}

// WeakpointPolicy is how a controller spawns the weakpoints that gate its
// progress.
type WeakpointPolicy struct {
	Slots            []cp.Vector
	Required         int
	TutorialRequired int
	Health           int
	Radius           float64
	Lifetime         float64
	RespawnDelay     float64
	ExtraDelay       float64
	DeliveryTime     float64
	HitSound         string
	DeathSound       string
}

type PartConfig struct {
	Name   string
	Offset cp.Vector
	Radius float64
}

type ScriptSource struct {
	Name   string
	Source []byte
}

type Config struct {
	Name         string
	Phase        encounter.Phase
	Position     cp.Vector
	Arena        cp.Vector
	Health       int
	HealthPhases int
	Profile      encounter.DifficultyProfile
	Weakpoints   WeakpointPolicy
	Selection    Selection
	Patterns     []Pattern
	Clips        map[string]float64
	Parts        []PartConfig
	Scripts      []ScriptSource
	Seed         int64
}

// Deps are the shared collaborators every controller is built with.
type Deps struct {
	World     *ecs.World
	Scheduler *routine.Scheduler
	Registry  *encounter.Registry
	Services  encounter.Services
	Observer  encounter.Observer
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = c.Phase.String()
	}
	if c.Health <= 0 {
		c.Health = 1000
	}
	if c.HealthPhases <= 0 {
		c.HealthPhases = 2
	}
	if c.Arena.X <= 0 || c.Arena.Y <= 0 {
		c.Arena = cp.Vector{X: 1280, Y: 720}
	}
	wp := &c.Weakpoints
	if len(wp.Slots) == 0 {
		wp.Slots = []cp.Vector{
			{X: c.Arena.X * 0.2, Y: c.Arena.Y * 0.6},
			{X: c.Arena.X * 0.4, Y: c.Arena.Y * 0.75},
			{X: c.Arena.X * 0.6, Y: c.Arena.Y * 0.75},
			{X: c.Arena.X * 0.8, Y: c.Arena.Y * 0.6},
		}
	}
	if wp.Required <= 0 {
		wp.Required = 2
	}
	if wp.Required > len(wp.Slots) {
		wp.Required = len(wp.Slots)
	}
	if wp.TutorialRequired <= 0 {
		wp.TutorialRequired = wp.Required
	}
	if wp.TutorialRequired > len(wp.Slots) {
		wp.TutorialRequired = len(wp.Slots)
	}
	if wp.Health <= 0 {
		wp.Health = 3
	}
	if wp.DeliveryTime <= 0 {
		wp.DeliveryTime = 0.5
	}
	return c
}

// mergeProfile fills base tunables a variant depends on when the encounter document leaves
// them out.
func mergeProfile(p encounter.DifficultyProfile, speeds, durations map[string]float64, counts map[string]int) encounter.DifficultyProfile {
	out := p
	out.Speeds = map[string]float64{"projectile_speed": 320}
	out.Durations = map[string]float64{"attack_cooldown": 1.5, "initial_cooldown": 1}
	out.Counts = map[string]int{}
	for k, v := range speeds {
		out.Speeds[k] = v
	}
	for k, v := range durations {
		out.Durations[k] = v
	}
	for k, v := range counts {
		out.Counts[k] = v
	}
	for k, v := range p.Speeds {
		out.Speeds[k] = v
	}
	for k, v := range p.Durations {
		out.Durations[k] = v
	}
	for k, v := range p.Counts {
		out.Counts[k] = v
	}
	return out
}
