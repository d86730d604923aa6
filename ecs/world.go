package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/charactercontroller/ecs/component"
)

// DefaultGravity is the ambient acceleration applied to characters, in m/s².
var DefaultGravity = mgl64.Vec3{0, -9.81, 0}

// World owns entities, components, the system order and per-frame timing.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler *Scheduler
	events    EventQueue

	dt      float64
	elapsed float64
	frame   uint64
	gravity mgl64.Vec3

	physicsWorld *PhysicsWorld
}

// NewWorld creates an empty ECS world with default gravity.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*SparseSet),
		scheduler: NewScheduler(),
		gravity:   DefaultGravity,
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and marks it dead.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, set := range w.stores {
		set.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.alive()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// SetScheduler replaces the system order.
func (w *World) SetScheduler(s *Scheduler) {
	if w == nil || s == nil {
		return
	}
	w.scheduler = s
}

// Update advances the world by dt seconds and runs every system once, in order.
// Events pushed during the previous frame are discarded first.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	w.events.flush()
	if dt < 0 {
		dt = 0
	}
	w.dt = dt
	w.elapsed += dt
	w.frame++
	w.scheduler.Update(w)
}

// DeltaTime returns the elapsed time of the frame being updated.
func (w *World) DeltaTime() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

// Elapsed returns the total simulated time.
func (w *World) Elapsed() float64 {
	if w == nil {
		return 0
	}
	return w.elapsed
}

// Frame returns the number of completed Update calls, including the current one.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

// Gravity returns the ambient acceleration field.
func (w *World) Gravity() mgl64.Vec3 {
	if w == nil {
		return DefaultGravity
	}
	return w.gravity
}

// SetGravity overrides the ambient acceleration field.
func (w *World) SetGravity(g mgl64.Vec3) {
	if w == nil {
		return
	}
	w.gravity = g
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}

// Query returns the live entities that carry every given kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		set, ok := w.stores[k.ID()]
		if !ok || set.Len() == 0 {
			return nil
		}
		sets = append(sets, set)
	}
	// iterate the smallest set
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.Len())
	for _, e := range smallest.Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		all := true
		for _, s := range sets {
			if s != smallest && !s.Has(e) {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity carrying kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	entities := w.Query(kind)
	if len(entities) == 0 {
		return 0, false
	}
	return entities[0], true
}

func (w *World) store(id component.ComponentID) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	set, ok := w.stores[id]
	if !ok {
		set = &SparseSet{}
		w.stores[id] = set
	}
	return set
}
