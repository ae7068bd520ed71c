package declaration

import "fmt"

// Arena stores declaration nodes keyed by generational identity.
// Trampolines refer to functions by ID rather than by pointer, so a
// trampoline collection can outlive, or be compared independently of,
// the node storage, and no reference cycle between a function and its
// trampolines can form.
type Arena struct {
	slots []slot
}

type slot struct {
	gen  uint32
	decl Declaration
}

// NewArena returns an empty arena.
func NewArena() *Arena { return &Arena{} }

// Insert stores d and stamps its identity. A declaration belongs to at
// most one arena.
func (a *Arena) Insert(d Declaration) ID {
	a.slots = append(a.slots, slot{gen: 1, decl: d})
	id := ID{Index: uint32(len(a.slots) - 1), Generation: 1}
	d.setID(id)
	return id
}

// Lookup returns the declaration for id, or false if the id was never
// issued or refers to a removed generation.
func (a *Arena) Lookup(id ID) (Declaration, bool) {
	if !id.Valid() || int(id.Index) >= len(a.slots) {
		return nil, false
	}
	s := a.slots[id.Index]
	if s.gen != id.Generation || s.decl == nil {
		return nil, false
	}
	return s.decl, true
}

// Replace swaps the node stored under id for a new value of the same
// logical declaration. The identity is preserved: this is the
// non-destructive edit path, and every existing reference to id now
// resolves to the new value.
func (a *Arena) Replace(id ID, d Declaration) error {
	if _, ok := a.Lookup(id); !ok {
		return fmt.Errorf("replace: no declaration with id %d.%d", id.Index, id.Generation)
	}
	d.setID(id)
	a.slots[id.Index].decl = d
	return nil
}

// Remove deletes the declaration under id. The slot's generation is
// bumped so the id can never resolve again and is never reissued.
func (a *Arena) Remove(id ID) {
	if _, ok := a.Lookup(id); !ok {
		return
	}
	a.slots[id.Index].gen++
	a.slots[id.Index].decl = nil
}

// Len returns the number of live declarations.
func (a *Arena) Len() int {
	n := 0
	for _, s := range a.slots {
		if s.decl != nil {
			n++
		}
	}
	return n
}
