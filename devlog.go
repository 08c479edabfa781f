package devlog

import (
	"log/slog"
	"time"

	"github.com/rupanjan/devlog/pkg/core"
	journal "github.com/rupanjan/devlog/pkg/devlog"
	"github.com/rupanjan/devlog/pkg/search"
)

// --- Types ---

// Service is the journal's core facade.
type Service = journal.Service

// Config is the user configuration.
type Config = journal.Config

// LogEntry is a single journal note.
type LogEntry = core.LogEntry

// Context is the persisted project context.
type Context = core.Context

// Scope selects which store(s) a read draws from.
type Scope = core.Scope

// Filters narrows search candidates before text matching.
type Filters = search.Filters

// SearchOptions tunes a single search call.
type SearchOptions = search.Options

// Result is one ranked search hit.
type Result = search.Result

// Scopes.
const (
	ScopeLocal  = core.ScopeLocal
	ScopeGlobal = core.ScopeGlobal
	ScopeAll    = core.ScopeAll
)

// ParseScope normalizes a user-supplied scope string.
func ParseScope(s string) Scope {
	return core.ParseScope(s)
}

// --- Configuration ---

// Option defines a functional option for configuring the service.
type Option = journal.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return journal.WithLogger(logger)
}

// WithHome overrides the base directory for global state.
func WithHome(dir string) Option {
	return journal.WithHome(dir)
}

// WithWorkDir overrides the working folder the context is evaluated in.
func WithWorkDir(dir string) Option {
	return journal.WithWorkDir(dir)
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return journal.WithClock(now)
}

// WithConfig bypasses config-file loading.
func WithConfig(cfg Config) Option {
	return journal.WithConfig(cfg)
}

// --- Factory ---

// New creates a new journal Service and resolves the effective project for
// the current working folder.
func New(opts ...Option) (*Service, error) {
	return journal.New(opts...)
}

// --- Presentation ---

// RenderResults formats a ranked result list for the terminal.
func RenderResults(results []Result, query string) string {
	return journal.RenderResults(results, query)
}

// RenderLogs formats a plain entry listing.
func RenderLogs(logs []LogEntry) string {
	return journal.RenderLogs(logs)
}

// RenderContext formats the project context record.
func RenderContext(rec Context) string {
	return journal.RenderContext(rec)
}
