package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID keys a component store in the world. Zero is reserved for
// handles built without NewComponent.
type ComponentID uint32

var lastComponentID atomic.Uint32

// Kind is what queries match on; every ComponentKind satisfies it.
type Kind interface {
	ID() ComponentID
}

// ComponentKind ties a ComponentID to the Go type stored under it.
type ComponentKind[T any] struct {
	id ComponentID
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// ComponentHandle is the package-level token used with ecs.Add, ecs.Get and
// friends. Declare one per component type:
//
//	var MotionComponent = NewComponent[Motion]()
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

// NewComponent allocates a fresh id. Calling it twice for the same T yields
// two unrelated stores.
func NewComponent[T any]() ComponentHandle[T] {
	id := ComponentID(lastComponentID.Add(1))
	return ComponentHandle[T]{kind: ComponentKind[T]{id: id}}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
