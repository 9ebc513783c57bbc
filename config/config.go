// Package config loads optional per-project analyzer settings from a
// .depscope.yml file at the project root. Command-line flags override
// anything set in the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the per-project configuration file looked up under the root.
const FileName = ".depscope.yml"

// Config holds project-level analysis settings.
type Config struct {
	// ModuleBase qualifies absolute import resolution.
	ModuleBase string `yaml:"module_base"`
	// EntryPoint is the default reachability entry point, relative to the root.
	EntryPoint string `yaml:"entry_point"`
	// ExcludeDirs adds directory names to the default discovery exclusions.
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// Load reads the project configuration under root. A missing file is not an
// error and yields the zero Config.
func Load(root string) (Config, error) {
	path := filepath.Join(root, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Merge applies non-empty override values on top of the loaded config.
func (c Config) Merge(moduleBase, entryPoint string, excludeDirs []string) Config {
	merged := c
	if moduleBase != "" {
		merged.ModuleBase = moduleBase
	}
	if entryPoint != "" {
		merged.EntryPoint = entryPoint
	}
	merged.ExcludeDirs = append(merged.ExcludeDirs, excludeDirs...)
	return merged
}
