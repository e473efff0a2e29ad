package prefabs

import (
	"fmt"
	"path"
	"strings"

	"github.com/milk9111/bossrush/boss"
	"github.com/milk9111/bossrush/encounter"
)

// Validate checks the phase list and boss table without building anything.
func (s *EncounterSpec) Validate() error {
	if len(s.Phases) == 0 {
		return fmt.Errorf("prefabs: encounter %q lists no phases", s.Name)
	}
	if _, err := s.PhaseList(); err != nil {
		return err
	}
	for key, b := range s.Bosses {
		if _, err := encounter.ParsePhase(key); err != nil {
			return fmt.Errorf("prefabs: boss %q: %w", key, err)
		}
		for i, p := range b.Patterns {
			if p.Attack == "" {
				return fmt.Errorf("prefabs: boss %q pattern %d has no attack", key, i)
			}
		}
		if b.Weakpoints.Required > len(b.Weakpoints.Slots) && len(b.Weakpoints.Slots) > 0 {
			return fmt.Errorf("prefabs: boss %q requires %d weakpoints but has %d slots", key, b.Weakpoints.Required, len(b.Weakpoints.Slots))
		}
	}
	return nil
}

// PhaseList parses the phase order. Each phase may appear once.
func (s *EncounterSpec) PhaseList() ([]encounter.Phase, error) {
	seen := make(map[encounter.Phase]bool, len(s.Phases))
	out := make([]encounter.Phase, 0, len(s.Phases))
	for _, name := range s.Phases {
		p, err := encounter.ParsePhase(name)
		if err != nil {
			return nil, err
		}
		if seen[p] {
			return nil, fmt.Errorf("prefabs: phase %s listed twice: %w", p, encounter.ErrInvalidPhase)
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}

// Boss returns the entry for phase, or a zero entry when the document leaves
// the boss at its defaults.
func (s *EncounterSpec) Boss(phase encounter.Phase) BossSpec {
	return s.Bosses[phase.String()]
}

// BossConfig converts the boss entry for phase into controller config,
// loading its scripts.
func (s *EncounterSpec) BossConfig(phase encounter.Phase) (boss.Config, error) {
	b := s.Boss(phase)
	cfg := boss.Config{
		Name:         b.Name,
		Phase:        phase,
		Position:     b.Position.Vector(),
		Arena:        s.Arena.Vector(),
		Health:       b.Health,
		HealthPhases: b.HealthPhases,
		Clips:        b.Clips,
		Seed:         s.Seed + int64(phase)*7919,
		Profile: encounter.DifficultyProfile{
			TutorialPercentage: b.Difficulty.Tutorial,
			EasyPercentage:     b.Difficulty.Easy,
			NormalPercentage:   b.Difficulty.Normal,
			Speeds:             b.Difficulty.Speeds,
			Durations:          b.Difficulty.Durations,
			Counts:             b.Difficulty.Counts,
		},
		Weakpoints: boss.WeakpointPolicy{
			Required:         b.Weakpoints.Required,
			TutorialRequired: b.Weakpoints.TutorialRequired,
			Health:           b.Weakpoints.Health,
			Radius:           b.Weakpoints.Radius,
			Lifetime:         b.Weakpoints.Lifetime,
			RespawnDelay:     b.Weakpoints.RespawnDelay,
			ExtraDelay:       b.Weakpoints.ExtraDelay,
			DeliveryTime:     b.Weakpoints.DeliveryTime,
			HitSound:         b.Weakpoints.HitSound,
			DeathSound:       b.Weakpoints.DeathSound,
		},
	}
	for _, slot := range b.Weakpoints.Slots {
		cfg.Weakpoints.Slots = append(cfg.Weakpoints.Slots, slot.Vector())
	}
	for _, p := range b.Patterns {
		cfg.Patterns = append(cfg.Patterns, boss.Pattern{Name: p.Name, Attack: p.Attack, Rows: p.Rows})
	}
	for _, p := range b.Parts {
		cfg.Parts = append(cfg.Parts, boss.PartConfig{Name: p.Name, Offset: p.Offset.Vector(), Radius: p.Radius})
	}
	for _, name := range b.Scripts {
		src, err := LoadScript(name)
		if err != nil {
			return boss.Config{}, fmt.Errorf("prefabs: boss %s script %s: %w", phase, name, err)
		}
		cfg.Scripts = append(cfg.Scripts, boss.ScriptSource{Name: scriptName(name), Source: src})
	}
	return cfg, nil
}

// scriptName is the attack name a script registers under: its base name
// without extension.
func scriptName(file string) string {
	base := path.Base(strings.ReplaceAll(file, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}
