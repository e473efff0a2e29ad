package boss

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/routine"
)

// DJ spins vinyl volleys, drops the bass and scratches across the stage.
type DJ struct {
	*Controller
}

func NewDJ(cfg Config, deps Deps) (*DJ, error) {
	cfg.Selection = SelectRandom
	cfg.Profile = mergeProfile(cfg.Profile,
		map[string]float64{"projectile_speed": 300, "scratch_speed": 420},
		map[string]float64{
			"volley_interval":  0.4,
			"shockwave_time":   1.2,
			"scratch_interval": 0.12,
			"shake_time":       0.5,
		},
		map[string]int{"spin_volleys": 4, "ring_size": 10, "scratch_shots": 12},
	)
	c, err := newController(cfg, deps)
	if err != nil {
		return nil, err
	}
	d := &DJ{Controller: c}
	c.addAttack(Attack{Name: "record_spin", Run: d.recordSpin})
	c.addAttack(Attack{Name: "bass_drop", Run: d.bassDrop})
	c.addAttack(Attack{Name: "scratch", Run: d.scratch})
	if err := c.finalize(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DJ) recordSpin(Pattern) routine.Step {
	volleys := d.params.Count("spin_volleys")
	ring := d.params.Count("ring_size")
	step := math.Pi / float64(ring)
	return routine.Seq(
		d.anim("spin"),
		routine.Repeat(volleys, func(i int) routine.Step {
			return routine.Seq(
				routine.Call(func() { d.ring(d.origin(), ring, step*float64(i), d.params.Speed("projectile_speed")) }),
				d.wait("volley_interval"),
			)
		}),
		d.anim("idle"),
	)
}

func (d *DJ) bassDrop(Pattern) routine.Step {
	return routine.Seq(
		d.play("drop_windup"),
		d.sound("bass_drop"),
		d.shake(6, "shake_time"),
		routine.Call(func() {
			floor := cp.Vector{X: d.cfg.Arena.X / 2, Y: d.cfg.Arena.Y - 20}
			d.hazard(floor, d.cfg.Arena.X, 40, d.params.Duration("shockwave_time"))
		}),
		d.wait("shockwave_time"),
		d.anim("idle"),
	)
}

// scratch sweeps a stream of fast shots from one side to the other.
func (d *DJ) scratch(Pattern) routine.Step {
	shots := d.params.Count("scratch_shots")
	from, to := math.Pi*0.15, math.Pi*0.85
	if d.rng.Intn(2) == 0 {
		from, to = to, from
	}
	return routine.Seq(
		d.anim("scratch"),
		d.sound("scratch"),
		routine.Repeat(shots, func(i int) routine.Step {
			t := 0.0
			if shots > 1 {
				t = float64(i) / float64(shots-1)
			}
			angle := from + (to-from)*t
			return routine.Seq(
				routine.Call(func() { d.fire(d.origin(), cp.ForAngle(angle), d.params.Speed("scratch_speed")) }),
				d.wait("scratch_interval"),
			)
		}),
		d.anim("idle"),
	)
}
