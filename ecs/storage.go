package ecs

// entityStore tracks entity generations and free ids. Ids start at 1 so the
// zero Entity is never alive.
type entityStore struct {
	gen  []generation
	free []entityID
}

func (s *entityStore) create() Entity {
	if len(s.free) > 0 {
		id := s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
		return makeEntity(id, s.gen[id-1])
	}
	s.gen = append(s.gen, 0)
	return makeEntity(entityID(len(s.gen)), 0)
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.id() - 1
	s.gen[idx]++
	s.free = append(s.free, e.id())
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.gen[id-1] == e.generation()
}

func (s *entityStore) alive() []Entity {
	free := make(map[entityID]struct{}, len(s.free))
	for _, id := range s.free {
		free[id] = struct{}{}
	}
	out := make([]Entity, 0, len(s.gen)-len(s.free))
	for i, g := range s.gen {
		id := entityID(i + 1)
		if _, ok := free[id]; ok {
			continue
		}
		out = append(out, makeEntity(id, g))
	}
	return out
}
