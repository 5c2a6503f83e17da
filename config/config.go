// Package config loads the optional .snipsync.yaml file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the content root.
const FileName = ".snipsync.yaml"

// Config controls discovery and rendering. The zero value is not usable,
// start from Default.
type Config struct {
	// ContentRoot overrides the git toplevel as the base for content
	// file paths in directives.
	ContentRoot string `yaml:"content_root"`

	// ExcludeDirs are directory names skipped while walking a doc tree.
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// Ellipsis is the line body substituted for elided regions.
	Ellipsis string `yaml:"ellipsis"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ExcludeDirs: []string{".git", "node_modules", "vendor", "target"},
		Ellipsis:    "// ...",
	}
}

// Load reads the config file at path. The file may set any subset of the
// fields, unset fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// unmarshal on top of the defaults, absent keys keep their default
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Find looks for the config file in dir. A missing file is not an
// error, it just means defaults.
func Find(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Excluded reports whether a directory name is excluded from the walk.
func (c *Config) Excluded(name string) bool {
	for _, dir := range c.ExcludeDirs {
		if name == dir {
			return true
		}
	}
	return false
}
