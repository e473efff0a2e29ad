package boss

import (
	"fmt"
	"log"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/routine"
)

// A script defines attack(boss). Calls on boss queue steps which run in
// order once attack returns; queries answer immediately.
const scriptDispatch = `
attack(__boss)
`

// Script is a compiled attack routine.
type Script struct {
	name     string
	compiled *tengo.Compiled
}

func CompileScript(name string, src []byte) (*Script, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), scriptDispatch...))
	_ = script.Add("__boss", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	return &Script{name: name, compiled: compiled}, nil
}

func (s *Script) Name() string { return s.name }

// Steps runs the script against c and returns the queued routine.
func (s *Script) Steps(c *Controller, p Pattern) (routine.Step, error) {
	b := &scriptBuilder{c: c}
	run := s.compiled.Clone()
	if err := run.Set("__boss", b.engine(p)); err != nil {
		return nil, fmt.Errorf("script %s: %w", s.name, err)
	}
	if err := run.Run(); err != nil {
		return nil, fmt.Errorf("script %s: %w", s.name, err)
	}
	return routine.Seq(b.steps...), nil
}

func (c *Controller) scripted(s *Script) func(Pattern) routine.Step {
	return func(p Pattern) routine.Step {
		step, err := s.Steps(c, p)
		if err != nil {
			log.Printf("boss: %s %v", c.cfg.Name, err)
			return nil
		}
		return step
	}
}

type scriptBuilder struct {
	c     *Controller
	steps []routine.Step
}

func (b *scriptBuilder) push(step routine.Step) {
	b.steps = append(b.steps, step)
}

func (b *scriptBuilder) engine(p Pattern) *tengo.ImmutableMap {
	c := b.c
	values := map[string]tengo.Object{
		"name":    &tengo.String{Value: c.cfg.Name},
		"tier":    &tengo.String{Value: c.params.Tier.String()},
		"forward": &tengo.Float{Value: c.params.Forward},
		"inverse": &tengo.Float{Value: c.params.Inverse},
		"pattern": &tengo.String{Value: p.Name},
		"arena":   vectorObject(c.cfg.Arena),
	}
	rows := make([]tengo.Object, 0, len(p.Rows))
	for _, r := range p.Rows {
		rows = append(rows, &tengo.String{Value: r})
	}
	values["rows"] = &tengo.ImmutableArray{Value: rows}

	fn := func(name string, f func(args ...tengo.Object) (tengo.Object, error)) {
		values[name] = &tengo.UserFunction{Name: name, Value: f}
	}

	// wait accepts seconds or the name of a scaled duration.
	fn("wait", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		if name, ok := args[0].(*tengo.String); ok {
			b.push(c.wait(name.Value))
			return tengo.UndefinedValue, nil
		}
		b.push(routine.Wait(floatArg(args, 0, 0)))
		return tengo.UndefinedValue, nil
	})
	fn("fire", func(args ...tengo.Object) (tengo.Object, error) {
		angle := floatArg(args, 0, 90) * math.Pi / 180
		speed := speedArg(c, args, 1)
		b.push(routine.Call(func() { c.fire(c.origin(), cp.ForAngle(angle), speed) }))
		return tengo.UndefinedValue, nil
	})
	fn("aimed", func(args ...tengo.Object) (tengo.Object, error) {
		speed := speedArg(c, args, 0)
		b.push(routine.Call(func() {
			o := c.origin()
			c.fire(o, c.aim(o), speed)
		}))
		return tengo.UndefinedValue, nil
	})
	fn("ring", func(args ...tengo.Object) (tengo.Object, error) {
		n := int(floatArg(args, 0, 8))
		speed := speedArg(c, args, 1)
		b.push(routine.Call(func() { c.ring(c.origin(), n, 0, speed) }))
		return tengo.UndefinedValue, nil
	})
	fn("hazard", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 4 {
			return nil, tengo.ErrWrongNumArguments
		}
		pos := cp.Vector{X: floatArg(args, 0, 0), Y: floatArg(args, 1, 0)}
		w, h := floatArg(args, 2, 32), floatArg(args, 3, 32)
		life := floatArg(args, 4, 1)
		b.push(routine.Call(func() { c.hazard(pos, w, h, life) }))
		return tengo.UndefinedValue, nil
	})
	fn("shake", func(args ...tengo.Object) (tengo.Object, error) {
		intensity, seconds := floatArg(args, 0, 4), floatArg(args, 1, 0.5)
		b.push(routine.Call(func() {
			if c.svc.Camera != nil {
				c.svc.Camera.Shake(intensity, seconds)
			}
		}))
		return tengo.UndefinedValue, nil
	})
	fn("sound", func(args ...tengo.Object) (tengo.Object, error) {
		clip, _ := stringArg(args, 0)
		b.push(c.sound(clip))
		return tengo.UndefinedValue, nil
	})
	fn("anim", func(args ...tengo.Object) (tengo.Object, error) {
		state, ok := stringArg(args, 0)
		if !ok {
			return nil, tengo.ErrWrongNumArguments
		}
		b.push(c.anim(state))
		return tengo.UndefinedValue, nil
	})
	fn("play", func(args ...tengo.Object) (tengo.Object, error) {
		state, ok := stringArg(args, 0)
		if !ok {
			return nil, tengo.ErrWrongNumArguments
		}
		b.push(c.play(state))
		return tengo.UndefinedValue, nil
	})
	fn("count", func(args ...tengo.Object) (tengo.Object, error) {
		name, _ := stringArg(args, 0)
		return &tengo.Int{Value: int64(c.params.Count(name))}, nil
	})
	fn("speed", func(args ...tengo.Object) (tengo.Object, error) {
		name, _ := stringArg(args, 0)
		return &tengo.Float{Value: c.params.Speed(name)}, nil
	})
	fn("duration", func(args ...tengo.Object) (tengo.Object, error) {
		name, _ := stringArg(args, 0)
		return &tengo.Float{Value: c.params.Duration(name)}, nil
	})
	fn("column", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: c.column(int(floatArg(args, 0, 0)), int(floatArg(args, 1, 1)))}, nil
	})
	fn("position", func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(c.origin()), nil
	})
	fn("player_position", func(args ...tengo.Object) (tengo.Object, error) {
		if c.svc.Player == nil {
			return tengo.UndefinedValue, nil
		}
		return vectorObject(c.svc.Player.Position()), nil
	})
	return &tengo.ImmutableMap{Value: values}
}

func vectorObject(v cp.Vector) tengo.Object {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"x": &tengo.Float{Value: v.X},
		"y": &tengo.Float{Value: v.Y},
	}}
}

func floatArg(args []tengo.Object, i int, def float64) float64 {
	if i >= len(args) {
		return def
	}
	if v, ok := tengo.ToFloat64(args[i]); ok {
		return v
	}
	return def
}

func stringArg(args []tengo.Object, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	return tengo.ToString(args[i])
}

// speedArg reads a literal speed, a named scaled speed, or falls back to
// projectile_speed.
func speedArg(c *Controller, args []tengo.Object, i int) float64 {
	if i < len(args) {
		if name, ok := args[i].(*tengo.String); ok {
			return c.params.Speed(name.Value)
		}
	}
	return floatArg(args, i, c.params.Speed("projectile_speed"))
}
