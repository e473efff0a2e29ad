// Package component holds the plain-data components of the encounter world.
// Each component type is registered once as a package-level handle, and
// systems look stores up through the handle's kind.
package component

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

var (
	nextComponentID atomic.Uint32

	namesMu sync.RWMutex
	names   = map[ComponentID]string{}
)

// ComponentKind is the typed key of a component store. The zero kind is invalid.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	var zero T
	namesMu.Lock()
	names[id] = fmt.Sprintf("%T", zero)
	namesMu.Unlock()
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

func (k ComponentKind[T]) String() string { return Name(k.id) }

// Name reports the Go type registered under id, or "invalid".
func Name(id ComponentID) string {
	namesMu.RLock()
	defer namesMu.RUnlock()
	if n, ok := names[id]; ok {
		return n
	}
	return "invalid"
}

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
