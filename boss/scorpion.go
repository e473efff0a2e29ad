package boss

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/routine"
)

// Scorpion fires its tail down grid patterns row by row. Firing a leg
// drops its collider until the leg regrows.
type Scorpion struct {
	*Controller
	legs []string
}

func NewScorpion(cfg Config, deps Deps) (*Scorpion, error) {
	cfg.Selection = SelectPattern
	if len(cfg.Parts) == 0 {
		for i := 0; i < 4; i++ {
			x := float64(i-2)*90 + 45
			cfg.Parts = append(cfg.Parts, PartConfig{Name: fmt.Sprintf("leg_%d", i), Offset: cp.Vector{X: x, Y: 70}, Radius: 24})
		}
	}
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = []Pattern{
			{Name: "checker", Attack: "tail_rows", Rows: []string{"x.x.x.x.", ".x.x.x.x", "x.x.x.x."}},
			{Name: "walls", Attack: "tail_rows", Rows: []string{"xx....xx", "..xxxx..", "xx....xx"}},
			{Name: "legs", Attack: "leg_fire"},
		}
	}
	cfg.Profile = mergeProfile(cfg.Profile,
		map[string]float64{"projectile_speed": 260, "leg_speed": 360},
		map[string]float64{"row_interval": 0.6, "leg_regrow": 4, "leg_interval": 0.2},
		map[string]int{"leg_shots": 6},
	)
	c, err := newController(cfg, deps)
	if err != nil {
		return nil, err
	}
	s := &Scorpion{Controller: c}
	for _, p := range cfg.Parts {
		s.legs = append(s.legs, p.Name)
	}
	c.addAttack(Attack{Name: "tail_rows", Run: s.tailRows})
	c.addAttack(Attack{Name: "leg_fire", Run: s.legFire})
	if err := c.finalize(); err != nil {
		return nil, err
	}
	return s, nil
}

// tailRows fires one projectile per marked cell, one row at a time.
func (s *Scorpion) tailRows(p Pattern) routine.Step {
	rows := p.Rows
	return routine.Seq(
		s.play("tail_raise"),
		routine.Repeat(len(rows), func(r int) routine.Step {
			row := rows[r]
			return routine.Seq(
				routine.Call(func() {
					for _, col := range cells(row) {
						from := cp.Vector{X: s.column(col, len(row)), Y: 0}
						s.fire(from, cp.Vector{X: 0, Y: 1}, s.params.Speed("projectile_speed"))
					}
				}),
				s.sound("tail_fire"),
				s.wait("row_interval"),
			)
		}),
		s.anim("idle"),
	)
}

// legFire detaches an armed leg and fires from it. The leg regrows on its
// own timer, independent of the attack loop.
func (s *Scorpion) legFire(Pattern) routine.Step {
	var leg string
	return routine.Seq(
		routine.Call(func() {
			var armed []string
			for _, l := range s.legs {
				if s.partArmed(l) {
					armed = append(armed, l)
				}
			}
			if len(armed) == 0 {
				return
			}
			leg = armed[s.rng.Intn(len(armed))]
			s.setPart(leg, false)
			detached := leg
			s.sched.After(s.token, s.params.Duration("leg_regrow"), func() { s.setPart(detached, true) })
		}),
		s.anim("leg_fire"),
		routine.Repeat(s.params.Count("leg_shots"), func(int) routine.Step {
			return routine.Seq(
				routine.Call(func() {
					if leg == "" {
						return
					}
					from := s.partPosition(leg)
					s.fire(from, s.aim(from), s.params.Speed("leg_speed"))
				}),
				s.wait("leg_interval"),
			)
		}),
		s.anim("idle"),
	)
}

// Legs lists the leg part names.
func (s *Scorpion) Legs() []string { return append([]string(nil), s.legs...) }

// LegArmed reports whether leg currently has its collider.
func (s *Scorpion) LegArmed(leg string) bool { return s.partArmed(leg) }
