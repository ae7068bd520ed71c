package transform

import (
	"github.com/Watch-Later/Biohazrd/declaration"
	"github.com/Watch-Later/Biohazrd/library"
	"github.com/Watch-Later/Biohazrd/trampoline"
)

// DefaultArgumentOverloadsPass is the registry name of the overload pass.
const DefaultArgumentOverloadsPass = "default-arg-overloads"

func init() {
	library.RegisterPass(DefaultArgumentOverloadsPass, DefaultArgumentOverloads)
}

// DefaultArgumentOverloads returns a pass that synthesizes one
// reduced-arity entry point per trailing defaulted parameter. A
// function f(a, b = 1, c = 2) gains secondaries for f(a, b) and f(a):
// the emitter fills the dropped arguments from the native default
// spellings.
func DefaultArgumentOverloads() library.Transform {
	return library.TransformFunc{
		N: DefaultArgumentOverloadsPass,
		F: func(lib *library.Library) (*library.Library, error) {
			out := lib.Clone()
			for _, entry := range lib.Functions() {
				defaults := trailingDefaults(entry.Fn.Parameters)
				if defaults == 0 {
					continue
				}
				col := out.Collections[entry.ID]
				primary := col.Primary()
				for dropped := 1; dropped <= defaults; dropped++ {
					next, err := col.WithTrampoline(trampoline.Trampoline{
						Target:     entry.ID,
						Name:       primary.Name,
						Shape:      primary.Shape,
						Arity:      primary.Arity - dropped,
						Provenance: DefaultArgumentOverloadsPass,
					})
					if err != nil {
						return nil, err
					}
					col = next
				}
				out.Collections[entry.ID] = col
			}
			return out, nil
		},
	}
}

// trailingDefaults counts defaulted parameters at the end of the
// parameter list. A defaulted parameter followed by a non-defaulted
// one cannot be dropped.
func trailingDefaults(params []*declaration.Parameter) int {
	n := 0
	for i := len(params) - 1; i >= 0; i-- {
		if params[i].Default == "" {
			break
		}
		n++
	}
	return n
}
