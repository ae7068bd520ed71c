package library

import (
	"testing"

	"github.com/Watch-Later/Biohazrd/declaration"
	"github.com/Watch-Later/Biohazrd/interchange"
	"github.com/Watch-Later/Biohazrd/trampoline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateFreeFunctions(t *testing.T) {
	units := []interchange.Unit{{
		File: "math.h",
		Decls: []declaration.Raw{
			{Kind: declaration.RawFunction, Spelling: "Add", Convention: "cdecl", File: "math.h"},
			{Kind: declaration.RawFunction, Spelling: "Sub", Convention: "cdecl", File: "math.h"},
		},
	}}

	lib, errs := Translate(units)
	assert.Empty(t, errs)
	require.Len(t, lib.Units, 1)

	entries := lib.Functions()
	require.Len(t, entries, 2)
	assert.Equal(t, "Add", entries[0].Fn.Name)
	assert.Equal(t, "Sub", entries[1].Fn.Name)

	for _, e := range entries {
		col, ok := lib.Collections[e.ID]
		require.True(t, ok)
		assert.Equal(t, e.ID, col.Target())
	}
}

func TestTranslateRecordMethods(t *testing.T) {
	units := []interchange.Unit{{
		File: "widget.h",
		Decls: []declaration.Raw{{
			Kind:     declaration.RawRecord,
			Spelling: "Widget",
			Members: []declaration.Raw{
				{Kind: declaration.RawField, Spelling: "width", FieldKind: declaration.FieldNormal, Type: "int"},
				{Kind: declaration.RawFunction, Spelling: "Draw", Convention: "thiscall", Method: true, Virtual: true, VTableSlot: 0},
			},
		}},
	}}

	lib, errs := Translate(units)
	assert.Empty(t, errs)

	entries := lib.Functions()
	require.Len(t, entries, 1)
	assert.Equal(t, "Draw", entries[0].Fn.Name)

	col := lib.Collections[entries[0].ID]
	assert.Equal(t, trampoline.VirtualDispatch, col.NativeFunction().Shape.Dispatch)
}

func TestTranslateBadDeclarationSkippedAlone(t *testing.T) {
	// An unresolvable calling convention aborts that declaration only:
	// no node, no collection, one reported error.
	units := []interchange.Unit{{
		File: "mixed.h",
		Decls: []declaration.Raw{
			{Kind: declaration.RawFunction, Spelling: "Good", Convention: "cdecl"},
			{Kind: declaration.RawFunction, Spelling: "Bad", Convention: "syscall64"},
		},
	}}

	lib, errs := Translate(units)
	require.Len(t, errs, 1)
	var cerr *declaration.ConstructionError
	require.ErrorAs(t, errs[0], &cerr)
	assert.Equal(t, "Bad", cerr.Name)

	entries := lib.Functions()
	require.Len(t, entries, 1)
	assert.Equal(t, "Good", entries[0].Fn.Name)
	assert.Len(t, lib.Collections, 1)
	require.Len(t, lib.Units, 1)
	assert.Len(t, lib.Units[0].Decls, 1)
}

func TestTranslateStampsEveryNode(t *testing.T) {
	units := []interchange.Unit{{
		File: "widget.h",
		Decls: []declaration.Raw{{
			Kind:     declaration.RawRecord,
			Spelling: "Widget",
			Members: []declaration.Raw{
				{Kind: declaration.RawField, Spelling: "width", FieldKind: declaration.FieldNormal, Type: "int"},
				{
					Kind: declaration.RawFunction, Spelling: "Resize", Convention: "thiscall", Method: true,
					Params: []declaration.Raw{
						{Kind: declaration.RawParameter, Spelling: "w", Type: "int"},
					},
				},
			},
		}},
	}}

	lib, errs := Translate(units)
	require.Empty(t, errs)

	// Fields and parameters get arena identities too, not just the
	// functions that own them.
	var assertStamped func(d declaration.Declaration)
	assertStamped = func(d declaration.Declaration) {
		require.True(t, d.DeclID().Valid(), d.DeclName())
		got, ok := lib.Arena.Lookup(d.DeclID())
		require.True(t, ok, d.DeclName())
		assert.Same(t, d, got)
		for _, child := range d.DeclChildren() {
			assertStamped(child)
		}
	}
	for _, unit := range lib.Units {
		for _, d := range unit.Decls {
			assertStamped(d)
		}
	}
}

func TestCloneIsolatesCollections(t *testing.T) {
	units := []interchange.Unit{{
		Decls: []declaration.Raw{
			{Kind: declaration.RawFunction, Spelling: "Add", Convention: "cdecl"},
		},
	}}
	lib, _ := Translate(units)
	entry := lib.Functions()[0]

	clone := lib.Clone()
	col := clone.Collections[entry.ID]
	next, err := col.WithTrampoline(trampoline.Trampoline{Target: entry.ID, Name: "add"})
	require.NoError(t, err)
	clone.Collections[entry.ID] = next

	assert.Empty(t, lib.Collections[entry.ID].Secondaries())
	assert.Len(t, clone.Collections[entry.ID].Secondaries(), 1)
	assert.Same(t, lib.Arena, clone.Arena)
}
