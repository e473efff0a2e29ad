package routine

import (
	"reflect"
	"testing"
)

func TestSchedulerOrdering(t *testing.T) {
	s := NewScheduler()
	tok := NewToken("test")
	var got []string

	s.After(tok, 1.0, func() { got = append(got, "b") })
	s.After(tok, 0.5, func() { got = append(got, "a") })
	s.After(tok, 1.0, func() { got = append(got, "c") })
	s.After(tok, 2.0, func() { got = append(got, "d") })

	s.Advance(1.0)
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if s.Now() != 1.0 {
		t.Fatalf("expected now=1, got %v", s.Now())
	}
	s.Advance(1.0)
	if len(got) != 4 || got[3] != "d" {
		t.Fatalf("expected d to run second tick, got %v", got)
	}
}

func TestNestedTimersUseWakeTime(t *testing.T) {
	s := NewScheduler()
	tok := NewToken("test")
	var at []float64

	s.After(tok, 0.25, func() {
		at = append(at, s.Now())
		s.After(tok, 0.25, func() { at = append(at, s.Now()) })
	})
	s.Advance(1.0)

	if want := []float64{0.25, 0.5}; !reflect.DeepEqual(at, want) {
		t.Fatalf("expected %v, got %v", want, at)
	}
}

func TestRevokedWorkNeverRuns(t *testing.T) {
	tests := []struct {
		name   string
		revoke func(parent, child *Token)
		runs   int
	}{
		{"none", func(_, _ *Token) {}, 2},
		{"child", func(_, c *Token) { c.Revoke() }, 1},
		{"parent", func(p, _ *Token) { p.Revoke() }, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScheduler()
			parent := NewToken("parent")
			child := parent.Child("child")
			runs := 0
			s.After(parent, 1, func() { runs++ })
			s.After(child, 1, func() { runs++ })

			tc.revoke(parent, child)
			s.Advance(2)
			if runs != tc.runs {
				t.Fatalf("expected %d runs, got %d", tc.runs, runs)
			}
			if s.Pending() != 0 {
				t.Fatalf("expected nothing pending, got %d", s.Pending())
			}
		})
	}
}

func TestSeqRevokedMidway(t *testing.T) {
	s := NewScheduler()
	tok := NewToken("attack")
	var got []int
	done := false

	s.Run(tok, Seq(
		Call(func() { got = append(got, 1) }),
		Wait(1),
		Call(func() { got = append(got, 2) }),
		Wait(1),
		Call(func() { got = append(got, 3) }),
	), func() { done = true })

	s.Advance(1)
	tok.Revoke()
	s.Advance(5)

	if want := []int{1, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if done {
		t.Fatalf("done must not run after revoke")
	}
}

func TestRepeatAndWaitFor(t *testing.T) {
	s := NewScheduler()
	tok := NewToken("repeat")
	length := 0.5
	var at []float64
	finished := -1.0

	s.Run(tok, Repeat(3, func(i int) Step {
		return Seq(
			Call(func() { at = append(at, s.Now()) }),
			WaitFor(func() float64 { return length }),
		)
	}), func() { finished = s.Now() })

	for i := 0; i < 4; i++ {
		s.Advance(0.5)
	}

	if want := []float64{0, 0.5, 1.0}; !reflect.DeepEqual(at, want) {
		t.Fatalf("expected %v, got %v", want, at)
	}
	if finished != 1.5 {
		t.Fatalf("expected finish at 1.5, got %v", finished)
	}
}

func TestUntilPollsEachTick(t *testing.T) {
	s := NewScheduler()
	tok := NewToken("watch")
	count := 0
	fired := 0

	s.Run(tok, Until(func() bool { return count >= 3 }), func() { fired++ })
	for i := 0; i < 5; i++ {
		count++
		s.Advance(0.1)
	}
	if fired != 1 {
		t.Fatalf("expected watcher to fire once, got %d", fired)
	}
}

func TestTweenEndsAtOne(t *testing.T) {
	s := NewScheduler()
	tok := NewToken("tween")
	var last float64
	calls := 0
	done := false

	s.Run(tok, Tween(1, func(p float64) {
		last = p
		calls++
	}), func() { done = true })
	for i := 0; i < 12; i++ {
		s.Advance(0.1)
	}

	if last != 1 || !done {
		t.Fatalf("expected tween to end at 1 and finish, got last=%v done=%v", last, done)
	}
	if calls < 10 {
		t.Fatalf("expected per-tick updates, got %d", calls)
	}
}

func TestTickCounter(t *testing.T) {
	s := NewScheduler()
	tok := NewToken("tick")
	var ticks []uint64
	s.After(tok, 0, func() { ticks = append(ticks, s.Tick()) })
	s.Advance(0)
	s.After(tok, 0, func() { ticks = append(ticks, s.Tick()) })
	s.Advance(0)
	if want := []uint64{1, 2}; !reflect.DeepEqual(ticks, want) {
		t.Fatalf("expected %v, got %v", want, ticks)
	}
}
