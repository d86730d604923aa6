package ecs

import "github.com/milk9111/charactercontroller/ecs/component"

// Add stores value for e, replacing any previous value of the same kind.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	if w == nil || !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	kind := handle.Kind()
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	v := value
	w.store(kind.ID()).Set(e, &v)
	return nil
}

// Remove deletes the component of handle's kind from e.
func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil {
		return false
	}
	set, ok := w.stores[handle.Kind().ID()]
	if !ok {
		return false
	}
	return set.Remove(e)
}

// Has reports whether e carries a component of handle's kind.
func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	_, ok := lookup(w, e, handle)
	return ok
}

// Get returns a copy of e's component. Write changes back with Add.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	ptr, ok := lookup(w, e, handle)
	if !ok {
		return zero, false
	}
	return *ptr, true
}

// ForEach calls fn with a pointer to every stored component of handle's kind.
// Mutations through the pointer are persisted.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	set, ok := w.stores[handle.Kind().ID()]
	if !ok {
		return
	}
	entities := append([]Entity(nil), set.Entities()...)
	for _, e := range entities {
		if ptr, ok := set.Get(e).(*T); ok {
			fn(e, ptr)
		}
	}
}

// ForEach2 is ForEach over entities carrying both kinds.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(ha.Kind(), hb.Kind()) {
		a, okA := lookup(w, e, ha)
		b, okB := lookup(w, e, hb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

func lookup[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	if w == nil || !w.IsAlive(e) {
		return nil, false
	}
	set, ok := w.stores[handle.Kind().ID()]
	if !ok {
		return nil, false
	}
	ptr, ok := set.Get(e).(*T)
	return ptr, ok
}
