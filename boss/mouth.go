package boss

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/routine"
)

// Mouth spits, lashes its tongue and inhales. While it morphs between forms
// the sequencer is held off.
type Mouth struct {
	*Controller
	morphing bool
	form     int
}

func NewMouth(cfg Config, deps Deps) (*Mouth, error) {
	cfg.Selection = SelectRandom
	if len(cfg.Parts) == 0 {
		cfg.Parts = []PartConfig{{Name: "tongue", Offset: cp.Vector{X: 0, Y: 80}, Radius: 30}}
	}
	cfg.Profile = mergeProfile(cfg.Profile,
		map[string]float64{"projectile_speed": 280},
		map[string]float64{
			"spit_interval": 0.35,
			"lash_time":     0.8,
			"inhale_time":   2,
			"shake_time":    0.6,
		},
		map[string]int{"spit_blobs": 5, "spit_spread": 3},
	)
	c, err := newController(cfg, deps)
	if err != nil {
		return nil, err
	}
	m := &Mouth{Controller: c}
	c.addAttack(Attack{Name: "spit", Run: m.spit})
	c.addAttack(Attack{Name: "tongue_lash", Run: m.tongueLash})
	c.addAttack(Attack{Name: "inhale", Run: m.inhale})
	c.addAttack(Attack{Name: "morph", Run: m.morph})
	c.onTeardown = append(c.onTeardown, func() { m.morphing = false })
	if err := c.finalize(); err != nil {
		return nil, err
	}
	return m, nil
}

// CanTransition is false while a morph is playing.
func (m *Mouth) CanTransition() bool {
	return !m.morphing
}

func (m *Mouth) Morphing() bool { return m.morphing }

func (m *Mouth) Form() int { return m.form }

func (m *Mouth) spit(Pattern) routine.Step {
	return routine.Seq(
		m.anim("open"),
		routine.Repeat(m.params.Count("spit_blobs"), func(int) routine.Step {
			return routine.Seq(
				routine.Call(func() {
					o := m.origin()
					m.spread(o, m.aim(o), m.params.Count("spit_spread"), math.Pi/8, m.params.Speed("projectile_speed"))
				}),
				m.sound("spit"),
				m.wait("spit_interval"),
			)
		}),
		m.anim("idle"),
	)
}

// tongueLash pulls the tongue in and lashes a hazard lane toward the player.
func (m *Mouth) tongueLash(Pattern) routine.Step {
	return routine.Seq(
		m.play("lash_windup"),
		routine.Call(func() {
			m.setPart("tongue", false)
			o := m.origin()
			dir := m.aim(o)
			reach := m.cfg.Arena.Y * 0.6
			e := m.hazard(o.Add(dir.Mult(reach/2)), 40, reach, m.params.Duration("lash_time"))
			m.rotate(e, dir.ToAngle()-math.Pi/2)
		}),
		m.sound("lash"),
		m.wait("lash_time"),
		routine.Call(func() { m.setPart("tongue", true) }),
		m.anim("idle"),
	)
}

func (m *Mouth) inhale(Pattern) routine.Step {
	return routine.Seq(
		m.anim("inhale"),
		m.sound("inhale"),
		routine.Call(func() {
			o := m.origin()
			m.hazard(o.Add(cp.Vector{X: 0, Y: 120}), 200, 200, m.params.Duration("inhale_time"))
		}),
		m.smoothShake(3, "inhale_time"),
		m.wait("inhale_time"),
		m.anim("idle"),
	)
}

func (m *Mouth) morph(Pattern) routine.Step {
	return routine.Seq(
		routine.Call(func() { m.morphing = true }),
		m.sound("morph"),
		m.play("morph"),
		routine.Call(func() {
			m.morphing = false
			m.form = (m.form + 1) % 2
		}),
		m.anim("idle"),
	)
}
