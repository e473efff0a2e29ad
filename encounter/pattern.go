package encounter

import "math/rand"

// PatternQueue hands out items from a shuffled cycle, reshuffling each time
// the cycle is used up.
type PatternQueue[T any] struct {
	items []T
	order []int
	next  int
	rng   *rand.Rand
}

func NewPatternQueue[T any](rng *rand.Rand, items ...T) *PatternQueue[T] {
	q := &PatternQueue[T]{items: append([]T(nil), items...), rng: rng}
	q.shuffle()
	return q
}

func (q *PatternQueue[T]) shuffle() {
	q.order = q.order[:0]
	for i := range q.items {
		q.order = append(q.order, i)
	}
	if q.rng != nil {
		q.rng.Shuffle(len(q.order), func(i, j int) { q.order[i], q.order[j] = q.order[j], q.order[i] })
	}
	q.next = 0
}

// Next returns the next item. ok is false when the queue is empty.
func (q *PatternQueue[T]) Next() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	if q.next >= len(q.order) {
		q.shuffle()
	}
	item := q.items[q.order[q.next]]
	q.next++
	return item, true
}

// Reset starts a new shuffled cycle.
func (q *PatternQueue[T]) Reset() {
	q.shuffle()
}

func (q *PatternQueue[T]) Len() int {
	return len(q.items)
}
