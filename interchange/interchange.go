// Package interchange loads the JSON declaration records emitted by
// the native parsing front end. Parsing C/C++ source text is out of
// scope; by the time data reaches this package it is already an AST
// dump, one unit per translation unit.
package interchange

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Watch-Later/Biohazrd/declaration"
)

// Unit is the raw declaration set of one translation unit.
type Unit struct {
	File  string            `json:"file"`
	Decls []declaration.Raw `json:"decls"`
}

// Load decodes a JSON array of units from r.
func Load(r io.Reader) ([]Unit, error) {
	var units []Unit
	if err := json.NewDecoder(r).Decode(&units); err != nil {
		return nil, fmt.Errorf("decoding declaration interchange: %w", err)
	}
	return units, nil
}

// LoadFile decodes a JSON interchange file.
func LoadFile(path string) ([]Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()
	units, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return units, nil
}
