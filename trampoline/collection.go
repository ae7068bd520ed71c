package trampoline

import (
	"fmt"

	"github.com/Watch-Later/Biohazrd/declaration"
)

// Collection is the set of entry points for one target function:
// exactly one native entry, one primary entry, and zero or more
// secondary entries, all bound to the same target identity. It is the
// unit a code emitter consumes per function.
//
// Invariant: every entry in the collection shares the native entry's
// Target, and only the native entry carries the native flag.
type Collection struct {
	native    Trampoline
	primary   Trampoline
	secondary []Trampoline
}

// ConsistencyError reports an attempted edit that would violate the
// identity or native-exclusivity invariant. It is raised before any
// new value is returned, so an invalid collection is never observable.
type ConsistencyError struct {
	Op     string
	Reason string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("trampoline %s: %s", e.Op, e.Reason)
}

// Target returns the identity of the function every entry serves.
func (c Collection) Target() declaration.ID { return c.native.Target }

// NativeFunction returns the ground-truth native entry.
func (c Collection) NativeFunction() Trampoline { return c.native }

// Primary returns the normalized default entry point.
func (c Collection) Primary() Trampoline { return c.primary }

// Secondaries returns the secondary entries in append order. The
// returned slice is a copy; the collection itself never changes.
func (c Collection) Secondaries() []Trampoline {
	if len(c.secondary) == 0 {
		return nil
	}
	return append([]Trampoline(nil), c.secondary...)
}

// Len returns the total number of entry points. The primary is not
// double-counted when it is the native entry itself.
func (c Collection) Len() int {
	n := 2 + len(c.secondary)
	if c.primary.IsNativeFunction {
		n--
	}
	return n
}

// WithTrampoline returns a new collection with t appended to the
// secondary entries. The receiver is left unchanged. t must target the
// same function and must not be native-flagged; either violation is a
// ConsistencyError and no new collection is produced.
func (c Collection) WithTrampoline(t Trampoline) (Collection, error) {
	if t.Target != c.native.Target {
		return Collection{}, &ConsistencyError{
			Op:     "append",
			Reason: fmt.Sprintf("trampoline targets function %v, collection targets %v", t.Target, c.native.Target),
		}
	}
	if t.IsNativeFunction {
		return Collection{}, &ConsistencyError{
			Op:     "append",
			Reason: "a native-flagged trampoline cannot be a secondary entry",
		}
	}
	next := c
	next.secondary = make([]Trampoline, len(c.secondary)+1)
	copy(next.secondary, c.secondary)
	next.secondary[len(c.secondary)] = t
	return next, nil
}

// WithNativeFunction returns a new collection whose native entry is t.
// The replacement must itself be native-flagged and must target the
// same function, so holders of the old value can never observe a
// collection pointing at two different functions.
func (c Collection) WithNativeFunction(t Trampoline) (Collection, error) {
	if !t.IsNativeFunction {
		return Collection{}, &ConsistencyError{
			Op:     "replace native",
			Reason: "replacement is not flagged as the native function",
		}
	}
	if t.Target != c.native.Target {
		return Collection{}, &ConsistencyError{
			Op:     "replace native",
			Reason: fmt.Sprintf("replacement targets function %v, collection targets %v", t.Target, c.native.Target),
		}
	}
	next := c
	if c.primary.IsNativeFunction {
		next.primary = t
	}
	next.native = t
	return next, nil
}
