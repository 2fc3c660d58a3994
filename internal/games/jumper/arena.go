package jumper

// Handle refers to an entity in an Arena. A handle goes stale as soon as its
// entity is killed, and stays stale after the slot is reused.
type Handle struct {
	index uint32
	gen   uint32
}

// Valid reports whether the handle was ever issued. It does not check liveness.
func (h Handle) Valid() bool {
	return h.gen > 0
}

type slot struct {
	gen    uint32
	alive  bool
	entity Entity
}

// Arena owns every live platform, coin and enemy.
//
// Killing an entity only flips its slot; the live list is compacted by Sweep,
// which the session runs once at the end of each tick. Iteration therefore
// never sees the list change underneath it.
type Arena struct {
	slots []slot
	free  []uint32
	live  []uint32 // slot indices in spawn order, may include killed slots until Sweep
}

// Spawn stores e and returns its handle.
func (a *Arena) Spawn(e Entity) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}

	s := &a.slots[idx]
	s.gen++
	s.alive = true
	s.entity = e
	a.live = append(a.live, idx)
	return Handle{index: idx, gen: s.gen}
}

// Get returns the entity for h if it is still alive.
func (a *Arena) Get(h Handle) (*Entity, bool) {
	if !a.isAlive(h) {
		return nil, false
	}
	return &a.slots[h.index].entity, true
}

// Kill marks the entity dead. It reports false for stale handles.
func (a *Arena) Kill(h Handle) bool {
	if !a.isAlive(h) {
		return false
	}
	a.slots[h.index].alive = false
	return true
}

func (a *Arena) isAlive(h Handle) bool {
	if !h.Valid() || int(h.index) >= len(a.slots) {
		return false
	}
	s := &a.slots[h.index]
	return s.alive && s.gen == h.gen
}

// Each calls fn for every live entity in spawn order. fn may Kill any
// entity, including the one it is visiting; killed entities are skipped.
// fn must not Spawn: the entity pointer is only valid until the next Spawn.
func (a *Arena) Each(fn func(h Handle, e *Entity)) {
	n := len(a.live)
	for i := 0; i < n; i++ {
		idx := a.live[i]
		s := &a.slots[idx]
		if !s.alive {
			continue
		}
		fn(Handle{index: idx, gen: s.gen}, &s.entity)
	}
}

// Sweep drops killed entities from the live list and recycles their slots.
// Returns the number of entities removed.
func (a *Arena) Sweep() int {
	kept := a.live[:0]
	removed := 0
	for _, idx := range a.live {
		if a.slots[idx].alive {
			kept = append(kept, idx)
			continue
		}
		a.slots[idx].entity = Entity{}
		a.free = append(a.free, idx)
		removed++
	}
	a.live = kept
	return removed
}

// Len returns the number of live entities.
func (a *Arena) Len() int {
	n := 0
	for _, idx := range a.live {
		if a.slots[idx].alive {
			n++
		}
	}
	return n
}

// Count returns the number of live entities of the given kind.
func (a *Arena) Count(kind Kind) int {
	n := 0
	a.Each(func(_ Handle, e *Entity) {
		if e.Kind == kind {
			n++
		}
	})
	return n
}

// Reset kills every entity. Outstanding handles become stale.
func (a *Arena) Reset() {
	for _, idx := range a.live {
		a.slots[idx].alive = false
	}
	a.Sweep()
}
