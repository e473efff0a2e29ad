package boss

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/routine"
)

var guitarAmps = []string{"amp_left", "amp_right"}

// Guitar shreds aimed chords and hazard strings. During a solo both amps
// drop their colliders until the solo ends or the phase tears down.
type Guitar struct {
	*Controller
}

func NewGuitar(cfg Config, deps Deps) (*Guitar, error) {
	cfg.Selection = SelectRandom
	if len(cfg.Parts) == 0 {
		cfg.Parts = []PartConfig{
			{Name: "amp_left", Offset: cp.Vector{X: -220, Y: 60}, Radius: 40},
			{Name: "amp_right", Offset: cp.Vector{X: 220, Y: 60}, Radius: 40},
		}
	}
	cfg.Profile = mergeProfile(cfg.Profile,
		map[string]float64{"projectile_speed": 340, "solo_speed": 460},
		map[string]float64{
			"chord_interval":  0.5,
			"string_interval": 0.3,
			"string_time":     1.5,
			"solo_interval":   0.1,
		},
		map[string]int{"chord_volleys": 3, "chord_size": 3, "strings": 4, "solo_shots": 16},
	)
	c, err := newController(cfg, deps)
	if err != nil {
		return nil, err
	}
	g := &Guitar{Controller: c}
	c.addAttack(Attack{Name: "power_chord", Run: g.powerChord})
	c.addAttack(Attack{Name: "string_snap", Run: g.stringSnap})
	c.addAttack(Attack{Name: "solo", Run: g.solo})
	if err := c.finalize(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Guitar) powerChord(Pattern) routine.Step {
	return routine.Seq(
		g.anim("strum"),
		routine.Repeat(g.params.Count("chord_volleys"), func(int) routine.Step {
			return routine.Seq(
				routine.Call(func() {
					o := g.origin()
					g.spread(o, g.aim(o), g.params.Count("chord_size"), math.Pi/6, g.params.Speed("projectile_speed"))
				}),
				g.sound("chord"),
				g.wait("chord_interval"),
			)
		}),
		g.anim("idle"),
	)
}

// stringSnap lays horizontal hazard strings one after another.
func (g *Guitar) stringSnap(Pattern) routine.Step {
	n := g.params.Count("strings")
	spacing := g.cfg.Arena.Y / float64(n+1)
	return routine.Seq(
		g.play("snap_windup"),
		routine.Repeat(n, func(i int) routine.Step {
			return routine.Seq(
				routine.Call(func() {
					g.hazard(cp.Vector{X: g.cfg.Arena.X / 2, Y: spacing * float64(i+1)}, g.cfg.Arena.X, 8, g.params.Duration("string_time"))
				}),
				g.sound("string_snap"),
				g.wait("string_interval"),
			)
		}),
		g.anim("idle"),
	)
}

func (g *Guitar) solo(Pattern) routine.Step {
	return routine.Seq(
		routine.Call(func() {
			for _, amp := range guitarAmps {
				g.setPart(amp, false)
			}
		}),
		g.anim("solo"),
		routine.Repeat(g.params.Count("solo_shots"), func(int) routine.Step {
			return routine.Seq(
				routine.Call(func() {
					amp := guitarAmps[g.rng.Intn(len(guitarAmps))]
					from := g.partPosition(amp)
					g.fire(from, g.aim(from), g.params.Speed("solo_speed"))
				}),
				g.wait("solo_interval"),
			)
		}),
		routine.Call(func() {
			for _, amp := range guitarAmps {
				g.setPart(amp, true)
			}
		}),
		g.anim("idle"),
	)
}
