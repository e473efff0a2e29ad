package boss

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/routine"
)

// Minotaur charges down lanes picked from grid patterns and stomps rings
// of hazards.
type Minotaur struct {
	*Controller
}

func NewMinotaur(cfg Config, deps Deps) (*Minotaur, error) {
	cfg.Selection = SelectPattern
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = []Pattern{
			{Name: "edges", Attack: "charge", Rows: []string{"x....x", ".x..x.", "..xx.."}},
			{Name: "center", Attack: "charge", Rows: []string{"..xx..", ".xxxx."}},
			{Name: "stomp", Attack: "stomp"},
		}
	}
	cfg.Profile = mergeProfile(cfg.Profile,
		nil,
		map[string]float64{"lane_time": 0.9, "lane_interval": 0.5, "stomp_recover": 1, "shake_time": 0.7},
		map[string]int{"stomp_hazards": 8},
	)
	c, err := newController(cfg, deps)
	if err != nil {
		return nil, err
	}
	m := &Minotaur{Controller: c}
	c.addAttack(Attack{Name: "charge", Run: m.charge})
	c.addAttack(Attack{Name: "stomp", Run: m.stomp})
	if err := c.finalize(); err != nil {
		return nil, err
	}
	return m, nil
}

// charge turns each row into vertical lane hazards swept in order.
func (m *Minotaur) charge(p Pattern) routine.Step {
	rows := p.Rows
	return routine.Seq(
		m.play("charge_windup"),
		m.sound("snort"),
		routine.Repeat(len(rows), func(r int) routine.Step {
			row := rows[r]
			return routine.Seq(
				routine.Call(func() {
					width := m.cfg.Arena.X / float64(len(row))
					for _, col := range cells(row) {
						m.hazard(cp.Vector{X: m.column(col, len(row)), Y: m.cfg.Arena.Y / 2}, width, m.cfg.Arena.Y, m.params.Duration("lane_time"))
					}
				}),
				m.wait("lane_interval"),
			)
		}),
		m.shake(4, "shake_time"),
		m.anim("idle"),
	)
}

func (m *Minotaur) stomp(Pattern) routine.Step {
	return routine.Seq(
		m.play("stomp"),
		routine.Call(func() {
			o := m.origin()
			n := m.params.Count("stomp_hazards")
			for i := 0; i < n; i++ {
				dir := cp.ForAngle(2 * math.Pi * float64(i) / float64(n))
				m.hazard(o.Add(dir.Mult(160)), 48, 48, m.params.Duration("stomp_recover"))
			}
		}),
		m.sound("stomp"),
		m.smoothShake(5, "shake_time"),
		m.wait("stomp_recover"),
		m.anim("idle"),
	)
}
