// Package config loads the YAML run configuration.
package config

import (
	"fmt"
	"os"

	"github.com/Watch-Later/Biohazrd/session"
	"gopkg.in/yaml.v3"
)

// Config describes one translation run.
type Config struct {
	// OutputDir is the output session root.
	OutputDir string `yaml:"output_dir"`
	// OnConflict is "rename" or "error".
	OnConflict string `yaml:"on_conflict"`
	// Passes lists transformation passes to run, in order. Names must
	// exist in the pass registry.
	Passes []string `yaml:"passes"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		OutputDir:  "biohazrd-out",
		OnConflict: "rename",
	}
}

// Load reads a YAML configuration file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if _, err := cfg.ConflictPolicy(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ConflictPolicy maps the on_conflict setting to a session policy.
func (c Config) ConflictPolicy() (session.ConflictPolicy, error) {
	switch c.OnConflict {
	case "", "rename":
		return session.RenameOnConflict, nil
	case "error":
		return session.ErrorOnConflict, nil
	default:
		return session.RenameOnConflict, fmt.Errorf("unknown on_conflict value %q", c.OnConflict)
	}
}
