// Package routine runs timed gameplay work cooperatively on the caller's
// goroutine. Nothing here is safe for concurrent use.
package routine

import "container/heap"

type timer struct {
	wake float64
	seq  uint64
	tok  *Token
	fn   func()
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].wake != h[j].wake {
		return h[i].wake < h[j].wake
	}
	return h[i].seq < h[j].seq
}
func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any) { *h = append(*h, x.(*timer)) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

type poll struct {
	tok *Token
	fn  func() bool
}

// Scheduler orders continuations by wake time, then by scheduling order.
// Polls run once per Advance after every due timer.
type Scheduler struct {
	now    float64
	tick   uint64
	seq    uint64
	timers timerHeap
	polls  []poll
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now is the simulated time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// Tick counts Advance calls. Work started from inside one Advance shares its
// tick.
func (s *Scheduler) Tick() uint64 {
	return s.tick
}

// After runs fn delay seconds from now unless tok is revoked first. A
// non-positive delay runs fn later in the current Advance, or in the next
// one when called outside Advance.
func (s *Scheduler) After(tok *Token, delay float64, fn func()) {
	if fn == nil || tok.Revoked() {
		return
	}
	if delay < 0 {
		delay = 0
	}
	s.seq++
	heap.Push(&s.timers, &timer{wake: s.now + delay, seq: s.seq, tok: tok, fn: fn})
}

// Every calls fn once per Advance, after the timers, until it returns true or
// tok is revoked. A poll registered by another poll first runs on the
// following Advance.
func (s *Scheduler) Every(tok *Token, fn func() bool) {
	if fn == nil || tok.Revoked() {
		return
	}
	s.polls = append(s.polls, poll{tok: tok, fn: fn})
}

// Advance moves time forward by dt and runs what came due.
func (s *Scheduler) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	s.tick++
	target := s.now + dt

	for len(s.timers) > 0 && s.timers[0].wake <= target {
		t := heap.Pop(&s.timers).(*timer)
		if t.wake > s.now {
			s.now = t.wake
		}
		if t.tok.Revoked() {
			continue
		}
		t.fn()
	}
	s.now = target

	polls := s.polls
	s.polls = nil
	kept := polls[:0]
	for _, p := range polls {
		if p.tok.Revoked() {
			continue
		}
		if p.fn() {
			continue
		}
		kept = append(kept, p)
	}
	// Polls added while running go after the survivors.
	s.polls = append(kept, s.polls...)
}

// Pending counts scheduled work whose token is still live.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.tok.Revoked() {
			n++
		}
	}
	for _, p := range s.polls {
		if !p.tok.Revoked() {
			n++
		}
	}
	return n
}

// PendingFor counts live work scheduled under tok or any of its children.
func (s *Scheduler) PendingFor(tok *Token) int {
	n := 0
	for _, t := range s.timers {
		if !t.tok.Revoked() && descends(t.tok, tok) {
			n++
		}
	}
	for _, p := range s.polls {
		if !p.tok.Revoked() && descends(p.tok, tok) {
			n++
		}
	}
	return n
}

func descends(t, ancestor *Token) bool {
	for cur := t; cur != nil; cur = cur.parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}
