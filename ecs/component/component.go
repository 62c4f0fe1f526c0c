package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID keys a component store inside a world. Zero is never issued.
type ComponentID uint32

var lastComponentID atomic.Uint32

// ComponentKind is the typed key the ecs package uses to reach the store
// of T. The zero kind is invalid and every Add with it fails.
type ComponentKind[T any] struct {
	id ComponentID
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// Component is declared once per data type as a package variable, for
// example TransformComponent, and hands out its kind to queries.
type Component[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() Component[T] {
	return Component[T]{kind: ComponentKind[T]{id: ComponentID(lastComponentID.Add(1))}}
}

func (c Component[T]) Kind() ComponentKind[T] { return c.kind }
