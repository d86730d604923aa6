package ecs

import "fmt"

// Entity is a handle to a world slot. The low half holds the slot number
// (1-based, 0 is never issued) and the high half counts how many times the
// slot has been recycled, so a handle kept past DestroyEntity goes stale
// instead of aliasing the next occupant.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

const slotBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<slotBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(e & (1<<slotBits - 1))
}

func (e Entity) generation() generation {
	return generation(e >> slotBits)
}

// Valid reports whether e was issued by a world at all. Use World.IsAlive to
// check that it still refers to a live slot.
func (e Entity) Valid() bool {
	return e.id() != 0
}

func (e Entity) String() string {
	if !e.Valid() {
		return "entity(none)"
	}
	return fmt.Sprintf("entity(%d#%d)", e.id(), e.generation())
}
