package cli

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the project config file name looked up in the
// working directory when --config is not given.
const DefaultConfigFile = ".arctrl.yaml"

// Config holds project-level defaults loaded from an .arctrl.yaml file.
// Flags given on the command line win over config values, which win
// over the built-in defaults.
type Config struct {
	// Format is the default output format ("text" or "json").
	Format string `yaml:"format,omitempty"`

	// Dialect is the default source dialect for commands that read
	// documents ("isajson" or "rocrate").
	Dialect string `yaml:"dialect,omitempty"`
}

// LoadConfig reads a config file. A missing file at the default
// location is not an error and yields an empty config; a missing file
// at an explicitly given path is.
func LoadConfig(path string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.Format != "" && !isValidFormat(cfg.Format) {
		return nil, fmt.Errorf("config file %s: invalid format %q: must be one of %v", path, cfg.Format, ValidFormats)
	}
	if cfg.Dialect != "" && !isValidDialect(cfg.Dialect) {
		return nil, fmt.Errorf("config file %s: invalid dialect %q: must be one of %v", path, cfg.Dialect, ValidDialects)
	}

	return &cfg, nil
}
