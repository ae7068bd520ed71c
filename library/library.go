// Package library holds the translated declaration graph: an arena of
// declaration nodes plus one trampoline collection per function. It
// also defines the contract transformation passes must honor.
package library

import (
	"github.com/Watch-Later/Biohazrd/declaration"
	"github.com/Watch-Later/Biohazrd/interchange"
	"github.com/Watch-Later/Biohazrd/trampoline"
)

// Library is the output of translation and the unit passes operate on.
// Nodes and collections are immutable values; passes produce a new
// Library (via Clone) rather than editing one in place.
type Library struct {
	Units       []*declaration.TranslationUnit
	Arena       *declaration.Arena
	Collections map[declaration.ID]trampoline.Collection

	functions []declaration.ID
}

// FunctionEntry pairs a function node with its identity.
type FunctionEntry struct {
	ID declaration.ID
	Fn *declaration.Function
}

// Functions returns every translated function in insertion order.
func (l *Library) Functions() []FunctionEntry {
	entries := make([]FunctionEntry, 0, len(l.functions))
	for _, id := range l.functions {
		d, ok := l.Arena.Lookup(id)
		if !ok {
			continue
		}
		fn, ok := d.(*declaration.Function)
		if !ok {
			continue
		}
		entries = append(entries, FunctionEntry{ID: id, Fn: fn})
	}
	return entries
}

// Clone returns a shallow copy with its own Collections map. Nodes,
// the arena and the unit list are structurally shared; a pass that
// appends trampolines mutates only its clone's map.
func (l *Library) Clone() *Library {
	collections := make(map[declaration.ID]trampoline.Collection, len(l.Collections))
	for id, c := range l.Collections {
		collections[id] = c
	}
	return &Library{
		Units:       l.Units,
		Arena:       l.Arena,
		Collections: collections,
		functions:   l.functions,
	}
}

// Translate runs the ABI extractor over every raw declaration and
// synthesizes one trampoline collection per function. A declaration
// that cannot be represented is reported in the returned error slice
// and skipped; it aborts only itself, never the run. Whether a non-nil
// error slice should abort everything is the caller's decision.
func Translate(units []interchange.Unit) (*Library, []error) {
	lib := &Library{
		Arena:       declaration.NewArena(),
		Collections: make(map[declaration.ID]trampoline.Collection),
	}
	var errs []error

	for _, u := range units {
		tu := declaration.NewTranslationUnit(u.File)
		for _, raw := range u.Decls {
			d, err := lib.translateDecl(raw)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			tu.Decls = append(tu.Decls, d)
		}
		lib.Arena.Insert(tu)
		lib.Units = append(lib.Units, tu)
	}

	return lib, errs
}

func (l *Library) translateDecl(raw declaration.Raw) (declaration.Declaration, error) {
	switch raw.Kind {
	case declaration.RawFunction:
		fn, err := declaration.NewFunction(raw)
		if err != nil {
			return nil, err
		}
		l.insertFunction(fn)
		return fn, nil
	case declaration.RawRecord:
		rec, err := declaration.NewRecord(raw)
		if err != nil {
			return nil, err
		}
		l.Arena.Insert(rec)
		for _, m := range rec.Members {
			if fn, ok := m.(*declaration.Function); ok {
				l.insertFunction(fn)
			} else {
				l.Arena.Insert(m)
			}
		}
		return rec, nil
	case declaration.RawField:
		var d declaration.Declaration
		var err error
		if raw.FieldKind == declaration.FieldBitfield {
			d, err = declaration.NewBitField(raw)
		} else {
			d, err = declaration.NewNormalField(raw)
		}
		if err != nil {
			return nil, err
		}
		l.Arena.Insert(d)
		return d, nil
	default:
		return nil, &declaration.ConstructionError{
			Kind:   raw.Kind,
			Name:   raw.Spelling,
			Reason: "unsupported top-level declaration kind",
		}
	}
}

// insertFunction stores a function and its parameters and synthesizes
// the function's first trampoline collection, created the moment its
// calling shape is known.
func (l *Library) insertFunction(fn *declaration.Function) declaration.ID {
	id := l.Arena.Insert(fn)
	for _, p := range fn.Parameters {
		l.Arena.Insert(p)
	}
	l.Collections[id] = trampoline.Synthesize(id, fn)
	l.functions = append(l.functions, id)
	return id
}
