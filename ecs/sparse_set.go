package ecs

// sparseSet stores one component value per entity slot. Iteration follows
// insertion order, with swap-remove reordering the tail.
type sparseSet struct {
	dense  []Entity
	values []any
	sparse []int
}

func newSparseSet() *sparseSet {
	return &sparseSet{}
}

func (s *sparseSet) index(e Entity) int {
	id := int(e.id())
	if id <= 0 || id > len(s.sparse) {
		return -1
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return -1
	}
	return idx
}

func (s *sparseSet) has(e Entity) bool {
	return s.index(e) >= 0
}

func (s *sparseSet) get(e Entity) (any, bool) {
	idx := s.index(e)
	if idx < 0 {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseSet) set(e Entity, v any) {
	id := int(e.id())
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.sparse[id-1]; idx >= 0 && idx < len(s.dense) && s.dense[idx].id() == e.id() {
		// Same slot, possibly a stale generation left behind by a destroy.
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	s.sparse[id-1] = len(s.dense)
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
}

func (s *sparseSet) remove(e Entity) bool {
	idx := s.index(e)
	if idx < 0 {
		return false
	}
	last := len(s.dense) - 1
	if idx != last {
		moved := s.dense[last]
		s.dense[idx] = moved
		s.values[idx] = s.values[last]
		s.sparse[int(moved.id())-1] = idx
	}
	s.dense = s.dense[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	s.sparse[int(e.id())-1] = -1
	return true
}

func (s *sparseSet) len() int {
	return len(s.dense)
}

// entities returns a copy so callers may mutate the set while iterating.
func (s *sparseSet) entities() []Entity {
	out := make([]Entity, len(s.dense))
	copy(out, s.dense)
	return out
}
