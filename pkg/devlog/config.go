package devlog

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rupanjan/devlog/pkg/core"
	"github.com/rupanjan/devlog/pkg/search"
)

// Config is the optional user configuration, loaded from config.yaml under
// the global state directory. Every field has a working default; the file
// only needs to exist when the user wants to override one.
type Config struct {
	// Author is the default author stamped on new logs when none is given
	// on the command line. Empty still falls back to "Anonymous".
	Author string `yaml:"author"`
	// Scope is the default read scope for listing commands: local, global
	// or all.
	Scope string `yaml:"scope"`

	Search SearchConfig `yaml:"search"`
}

// SearchConfig tunes the fuzzy search defaults.
type SearchConfig struct {
	Threshold float64 `yaml:"threshold"`
	Limit     int     `yaml:"limit"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Scope: string(core.ScopeLocal),
		Search: SearchConfig{
			Threshold: search.DefaultThreshold,
			Limit:     search.DefaultLimit,
		},
	}
}

// LoadConfig reads the configuration file at path. A missing file yields
// the defaults. A malformed file also yields the defaults, logged as a
// warning; configuration problems never abort a command.
func LoadConfig(path string, logger *slog.Logger) Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg
	}
	if err != nil {
		if logger != nil {
			logger.Warn("failed to read config, using defaults", "path", path, "error", err)
		}
		return cfg
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if logger != nil {
			cerr := &core.CorruptDataError{Path: path, Err: err}
			logger.Warn("ignoring malformed config", "warning", cerr.Error())
		}
		return DefaultConfig()
	}

	// Partial files leave untouched fields at their zero value; restore the
	// defaults for those.
	if cfg.Scope == "" {
		cfg.Scope = string(core.ScopeLocal)
	}
	if cfg.Search.Threshold <= 0 {
		cfg.Search.Threshold = search.DefaultThreshold
	}
	if cfg.Search.Limit <= 0 {
		cfg.Search.Limit = search.DefaultLimit
	}
	return cfg
}
