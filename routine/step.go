package routine

// Step is one piece of a cooperative routine. It must call next exactly once
// when finished, or never if tok was revoked along the way.
type Step func(s *Scheduler, tok *Token, next func())

// Run starts step under tok. done runs after the last step unless tok was
// revoked first.
func (s *Scheduler) Run(tok *Token, step Step, done func()) {
	if step == nil || tok.Revoked() {
		return
	}
	step(s, tok, func() {
		if tok.Revoked() || done == nil {
			return
		}
		done()
	})
}

// Call runs fn immediately.
func Call(fn func()) Step {
	return func(_ *Scheduler, tok *Token, next func()) {
		if tok.Revoked() {
			return
		}
		if fn != nil {
			fn()
		}
		next()
	}
}

// Wait suspends for a fixed number of seconds.
func Wait(seconds float64) Step {
	return WaitFor(func() float64 { return seconds })
}

// WaitFor suspends for a duration read when the step starts, such as the
// length of an animation clip that was just cross-faded in.
func WaitFor(seconds func() float64) Step {
	return func(s *Scheduler, tok *Token, next func()) {
		if tok.Revoked() {
			return
		}
		d := 0.0
		if seconds != nil {
			d = seconds()
		}
		s.After(tok, d, next)
	}
}

// Until suspends until pred reports true, checking once per tick.
func Until(pred func() bool) Step {
	return func(s *Scheduler, tok *Token, next func()) {
		if tok.Revoked() {
			return
		}
		if pred() {
			next()
			return
		}
		s.Every(tok, func() bool {
			if !pred() {
				return false
			}
			next()
			return true
		})
	}
}

// Seq runs steps one after another.
func Seq(steps ...Step) Step {
	return func(s *Scheduler, tok *Token, next func()) {
		var run func(i int)
		run = func(i int) {
			if tok.Revoked() {
				return
			}
			if i >= len(steps) {
				next()
				return
			}
			if steps[i] == nil {
				run(i + 1)
				return
			}
			steps[i](s, tok, func() { run(i + 1) })
		}
		run(0)
	}
}

// Repeat builds and runs n steps in order. body is called lazily so each
// iteration sees the state left by the previous one.
func Repeat(n int, body func(i int) Step) Step {
	return func(s *Scheduler, tok *Token, next func()) {
		var run func(i int)
		run = func(i int) {
			if tok.Revoked() {
				return
			}
			if i >= n {
				next()
				return
			}
			step := body(i)
			if step == nil {
				run(i + 1)
				return
			}
			step(s, tok, func() { run(i + 1) })
		}
		run(0)
	}
}

// Tween calls fn with progress in [0, 1] once per tick for seconds, ending
// with exactly 1.
func Tween(seconds float64, fn func(t float64)) Step {
	return func(s *Scheduler, tok *Token, next func()) {
		if tok.Revoked() {
			return
		}
		if seconds <= 0 {
			fn(1)
			next()
			return
		}
		start := s.Now()
		fn(0)
		s.Every(tok, func() bool {
			t := (s.Now() - start) / seconds
			if t < 1 {
				fn(t)
				return false
			}
			fn(1)
			next()
			return true
		})
	}
}

// Go starts step on its own without blocking the caller's sequence. It is
// used inside routines for fire-and-forget branches sharing tok.
func Go(step Step) Step {
	return func(s *Scheduler, tok *Token, next func()) {
		if tok.Revoked() {
			return
		}
		s.Run(tok, step, nil)
		next()
	}
}
