package ecs

// store is the type-erased view of a sparseSet the world uses for cleanup.
type store interface {
	remove(e Entity) bool
	has(e Entity) bool
	len() int
}

// sparseSet keeps components packed for iteration, indexed by entity id.
type sparseSet[T any] struct {
	entities []Entity
	values   []*T
	sparse   []int
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{}
}

func (s *sparseSet[T]) index(e Entity) (int, bool) {
	id := int(e.id())
	if id == 0 || id > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.entities) || s.entities[idx] != e {
		return 0, false
	}
	return idx, true
}

func (s *sparseSet[T]) has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *sparseSet[T]) get(e Entity) (*T, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseSet[T]) set(e Entity, v *T) {
	if idx, ok := s.index(e); ok {
		s.values[idx] = v
		return
	}
	id := int(e.id())
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	// A stale generation may still hold the slot.
	if old := s.sparse[id-1]; old >= 0 && old < len(s.entities) && s.entities[old].id() == e.id() {
		s.entities[old] = e
		s.values[old] = v
		return
	}
	s.entities = append(s.entities, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.entities) - 1
}

func (s *sparseSet[T]) remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.entities) - 1
	moved := s.entities[last]

	s.entities[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	s.values[last] = nil
	s.entities = s.entities[:last]
	s.values = s.values[:last]
	s.sparse[e.id()-1] = -1
	return true
}

func (s *sparseSet[T]) len() int {
	return len(s.entities)
}

// snapshot copies the dense arrays so callbacks may add or remove components.
func (s *sparseSet[T]) snapshot() ([]Entity, []*T) {
	ents := make([]Entity, len(s.entities))
	copy(ents, s.entities)
	vals := make([]*T, len(s.values))
	copy(vals, s.values)
	return ents, vals
}
