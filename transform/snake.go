// Package transform provides concrete transformation passes. Each
// pass is pure: it clones the library, appends secondary trampolines
// through the validated collection API, and leaves the input intact.
// Passes register themselves in the library pass registry via init().
package transform

import (
	"strings"
	"unicode"

	"github.com/Watch-Later/Biohazrd/library"
	"github.com/Watch-Later/Biohazrd/trampoline"
)

// SnakeCaseNamesPass is the registry name of the snake_case naming pass.
const SnakeCaseNamesPass = "snake-case-names"

func init() {
	library.RegisterPass(SnakeCaseNamesPass, SnakeCaseNames)
}

// SnakeCaseNames returns a pass that gives every function whose
// primary name is PascalCase an additional snake_case entry point.
// Functions whose name converts to itself (operators, already-lower
// names) are left alone.
func SnakeCaseNames() library.Transform {
	return library.TransformFunc{
		N: SnakeCaseNamesPass,
		F: func(lib *library.Library) (*library.Library, error) {
			out := lib.Clone()
			for _, entry := range lib.Functions() {
				snake := ToSnakeCase(entry.Fn.Name)
				if snake == "" || snake == entry.Fn.Name {
					continue
				}
				col := out.Collections[entry.ID]
				next, err := col.WithTrampoline(trampoline.Trampoline{
					Target:     entry.ID,
					Name:       snake,
					Shape:      col.Primary().Shape,
					Arity:      col.Primary().Arity,
					Provenance: SnakeCaseNamesPass,
				})
				if err != nil {
					return nil, err
				}
				out.Collections[entry.ID] = next
			}
			return out, nil
		},
	}
}

// abbreviations are initialisms common in C++ API names that should
// stay one word after conversion ("DeviceID" → "device_id", not
// "device_i_d").
var abbreviations = map[string]string{
	"URL": "url", "URI": "uri", "JSON": "json", "XML": "xml",
	"ID": "id", "API": "api", "ABI": "abi",
}

// ToSnakeCase converts PascalCase to snake_case.
// Handles consecutive uppercase (e.g., "ToUTF8" → "to_utf8", "DeviceID" → "device_id").
func ToSnakeCase(s string) string {
	for abbr, lower := range abbreviations {
		s = strings.ReplaceAll(s, abbr, "_"+lower+"_")
	}

	var b strings.Builder
	b.Grow(len(s) + 4)
	var prev rune
	for _, r := range s {
		if unicode.IsUpper(r) {
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				b.WriteByte('_')
			}
			prev = r
			r = unicode.ToLower(r)
		} else {
			prev = r
		}
		b.WriteRune(r)
	}

	// The abbreviation markers can leave leading, trailing or doubled
	// underscores; splitting on them normalizes all three at once.
	words := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '_' })
	return strings.Join(words, "_")
}
