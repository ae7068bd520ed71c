// Package trampoline models the layered call adapters that bridge a
// native entry point to a managed-friendly calling surface. Every
// function gets a Collection: the raw native entry, a normalized
// primary entry, and any number of secondary entries appended by
// transformation passes. All values are immutable; edits construct new
// values, so collections can be read concurrently without locking.
package trampoline

import "github.com/Watch-Later/Biohazrd/declaration"

// Dispatch describes how the native call target is reached.
type Dispatch int

const (
	// DirectCall invokes the mangled symbol directly.
	DirectCall Dispatch = iota
	// VirtualDispatch loads the target from the class vtable at the
	// method's slot.
	VirtualDispatch
)

func (d Dispatch) String() string {
	if d == VirtualDispatch {
		return "virtual"
	}
	return "direct"
}

// Shape describes how parameters and the return value map onto the
// native call. Beyond the native/non-native distinction, consumers
// treat it as opaque.
type Shape struct {
	Dispatch Dispatch
	// HasThisPointer is true when the call takes an explicit raw
	// `this` parameter.
	HasThisPointer bool
	// HasReturnBuffer is true when the call returns through an
	// implicit caller-allocated output parameter.
	HasReturnBuffer bool
}

// normalized returns the shape with all native-only concerns stripped:
// direct dispatch, no raw this, no return buffer.
func (s Shape) normalized() Shape { return Shape{Dispatch: DirectCall} }

// Trampoline is one callable entry point for a target function. The
// target is referenced by identity, never by pointer into the node
// graph.
type Trampoline struct {
	Target declaration.ID
	// Name is the caller-facing name of this entry point.
	Name string
	// IsNativeFunction is true only for the single ground-truth entry
	// representing the unadapted native call target.
	IsNativeFunction bool
	Shape            Shape
	// Arity is the number of caller-supplied parameters. Overload
	// passes append entries with a reduced arity.
	Arity int
	// Provenance names the component that created the entry.
	Provenance string
}

// Provenance values for synthesized entries.
const (
	ProvenanceNative  = "abi"
	ProvenancePrimary = "abi/normalized"
)

// Synthesize builds a function's first collection from its resolved
// ABI facts. The native entry models the literal call target: vtable
// dispatch for virtual methods, the raw this parameter for instance
// methods, the implicit return buffer where the ABI demands one. The
// primary entry strips those concerns; when there are none to strip
// it is the native entry itself.
func Synthesize(id declaration.ID, fn *declaration.Function) Collection {
	shape := Shape{
		Dispatch:        DirectCall,
		HasThisPointer:  fn.IsInstanceMethod,
		HasReturnBuffer: fn.ReturnsByBuffer,
	}
	if fn.IsVirtual {
		shape.Dispatch = VirtualDispatch
	}

	native := Trampoline{
		Target:           id,
		Name:             fn.Name,
		IsNativeFunction: true,
		Shape:            shape,
		Arity:            len(fn.Parameters),
		Provenance:       ProvenanceNative,
	}

	primary := native
	if stripped := shape.normalized(); stripped != shape {
		primary = Trampoline{
			Target:     id,
			Name:       fn.Name,
			Shape:      stripped,
			Arity:      len(fn.Parameters),
			Provenance: ProvenancePrimary,
		}
	}

	return Collection{native: native, primary: primary}
}
