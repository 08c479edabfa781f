package devlog

import (
	"log/slog"
	"time"

	"github.com/rupanjan/devlog/pkg/core"
)

// options holds the internal configuration for the journal service.
type options struct {
	logger   *slog.Logger
	home     string
	workDir  string
	now      func() time.Time
	config   *Config
	store    core.LogStore
	registry core.Registry
	contexts core.ContextStore
}

// Option defines a functional option for configuring the service.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		now: time.Now,
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHome overrides the base directory for global state (registry, context,
// global store). Tests point this at a temporary directory.
func WithHome(dir string) Option {
	return func(o *options) {
		o.home = dir
	}
}

// WithWorkDir overrides the working folder the context is evaluated in.
// Defaults to the process working directory.
func WithWorkDir(dir string) Option {
	return func(o *options) {
		o.workDir = dir
	}
}

// WithClock overrides the time source. Log IDs are derived from it, so
// tests use it to pin IDs.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithConfig bypasses config-file loading and uses the given configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = &cfg
	}
}

// WithStore injects a custom log store (e.g. an in-memory fake).
func WithStore(store core.LogStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithRegistry injects a custom registry.
func WithRegistry(reg core.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithContextStore injects a custom context store.
func WithContextStore(cs core.ContextStore) Option {
	return func(o *options) {
		o.contexts = cs
	}
}
