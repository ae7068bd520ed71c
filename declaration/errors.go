package declaration

import "fmt"

// ConstructionError reports a native declaration that cannot be
// represented: a wrong field kind for the requested variant, or an
// unsupported calling convention. It aborts translation of that one
// declaration; the pipeline driver decides whether to skip it or
// abort the run.
type ConstructionError struct {
	Kind   RawKind
	Name   string
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("cannot construct %s %q: %s", e.Kind, e.Name, e.Reason)
}
