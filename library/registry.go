package library

import "sort"

// The pass registry maps pass names to constructors. Passes register
// themselves via init(); import them with blank imports before asking
// the registry for anything. An explicit registry keeps discovery free
// of runtime type introspection.

var registry = make(map[string]func() Transform)

// RegisterPass adds a transform constructor to the global registry.
func RegisterPass(name string, ctor func() Transform) {
	registry[name] = ctor
}

// LookupPass returns a new instance of a registered pass.
func LookupPass(name string) (Transform, bool) {
	ctor, ok := registry[name]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// PassNames returns sorted names of all registered passes.
func PassNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
