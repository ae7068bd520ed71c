package library

import "fmt"

// Transform rewrites a library. Implementations must not mutate the
// input: they clone, append secondary trampolines through
// Collection.WithTrampoline, and return the new value. Holders of the
// input library never observe a partial edit.
type Transform interface {
	Name() string
	Apply(lib *Library) (*Library, error)
}

// TransformFunc adapts a named function to the Transform interface.
type TransformFunc struct {
	N string
	F func(*Library) (*Library, error)
}

func (t TransformFunc) Name() string                         { return t.N }
func (t TransformFunc) Apply(lib *Library) (*Library, error) { return t.F(lib) }

// Chain composes transforms left-to-right into a single Transform.
// Each transform receives the output of the previous one; the first
// error stops the chain.
func Chain(transforms ...Transform) Transform {
	return TransformFunc{
		N: "chain",
		F: func(lib *Library) (*Library, error) {
			for _, t := range transforms {
				next, err := t.Apply(lib)
				if err != nil {
					return nil, fmt.Errorf("pass %s: %w", t.Name(), err)
				}
				lib = next
			}
			return lib, nil
		},
	}
}
