// Package config loads tool configuration from a YAML file, filling in
// defaults for anything the file leaves unset.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable settings shared by the CLI subcommands.
type Config struct {
	// SolidName is the name written into the "solid" line of ASCII STL
	// output.
	SolidName string `yaml:"solidName"`
	// Seed is the triangle index orientation propagation starts from.
	Seed int `yaml:"seed"`
	// MeshCells is the marching cubes resolution used when generating
	// fixture solids.
	MeshCells int `yaml:"meshCells"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		SolidName: "burl",
		Seed:      0,
		MeshCells: 100,
	}
}

// Load reads a YAML config file. Fields absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c Config) validate() error {
	if c.Seed < 0 {
		return fmt.Errorf("seed must be non-negative, got %d", c.Seed)
	}
	if c.MeshCells <= 0 {
		return fmt.Errorf("meshCells must be positive, got %d", c.MeshCells)
	}
	if c.SolidName == "" {
		return fmt.Errorf("solidName must not be empty")
	}
	return nil
}
