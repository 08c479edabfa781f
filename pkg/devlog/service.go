package devlog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rupanjan/devlog/pkg/adapters/fs"
	"github.com/rupanjan/devlog/pkg/core"
	"github.com/rupanjan/devlog/pkg/search"
)

// Service is the journal's core facade: it owns the effective-project
// resolution and fronts the store, registry, context and search engine.
// One Service is constructed per invocation and passed to command handlers;
// there are no package-level singletons.
type Service struct {
	layout   fs.Layout
	workDir  string
	localDir string
	project  string

	store    core.LogStore
	registry core.Registry
	contexts core.ContextStore
	engine   *search.Engine

	logger *slog.Logger
	now    func() time.Time
	config Config
}

// New builds a Service and resolves the effective project for the current
// working folder. The resolution persists its outcome, so constructing a
// Service is itself a (small) mutating operation, matching the CLI's
// behavior of evaluating context on every command.
func New(opts ...Option) (*Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	workDir := o.workDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		workDir = wd
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, err
	}

	layout, err := fs.NewLayout(o.home)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	var cfg Config
	if o.config != nil {
		cfg = *o.config
	} else {
		cfg = LoadConfig(layout.ConfigPath(), o.logger)
	}

	s := &Service{
		layout:   layout,
		workDir:  workDir,
		registry: o.registry,
		contexts: o.contexts,
		logger:   o.logger,
		now:      o.now,
		config:   cfg,
	}
	if s.registry == nil {
		s.registry = fs.NewRegistry(layout, o.logger)
	}
	if s.contexts == nil {
		s.contexts = fs.NewContextStore(layout, o.logger)
	}

	ctx := context.Background()
	if err := s.resolveEffectiveProject(ctx); err != nil {
		return nil, err
	}

	s.store = o.store
	if s.store == nil {
		s.store = fs.NewStore(layout, s.localDir, s.registry, o.logger)
	}
	s.engine = search.NewEngine(s.store, o.logger)

	return s, nil
}

// resolveEffectiveProject runs the context resolution state machine:
//
//  1. Look up the working folder in the registry.
//  2. Manual mode is honored only while the working folder remains
//     registered; otherwise the manual flag is cleared and folder-based
//     inference takes over.
//  3. An unregistered folder becomes a brand-new project named after its
//     basename and is registered on the spot.
//
// The outcome is persisted so the next invocation starts from it.
func (s *Service) resolveEffectiveProject(ctx context.Context) error {
	folderName := filepath.Base(s.workDir)

	known, registered, err := s.registry.ProjectByFolder(ctx, s.workDir)
	if err != nil {
		return err
	}

	rec, err := s.contexts.Load(ctx)
	if err != nil {
		return err
	}

	if rec.Manual {
		if registered {
			s.project = rec.Current
			rec.LastFolder = s.workDir
			if err := s.contexts.Save(ctx, rec); err != nil {
				return err
			}
			return s.resolveLocalDir(ctx)
		}
		// The manual choice lost its registry backing; degrade to
		// folder inference instead of pointing at a dangling project.
		if s.logger != nil {
			s.logger.Debug("clearing stale manual context", "was", rec.Current)
		}
		rec.Manual = false
	}

	if registered {
		s.project = known
	} else {
		s.project = folderName
		if err := s.registry.Register(ctx, folderName, s.workDir); err != nil {
			return err
		}
	}

	rec.Current = s.project
	rec.Manual = false
	rec.LastFolder = s.workDir
	if _, ok := rec.Projects[s.project]; !ok {
		rec.Touch(s.project, "", s.now())
	}
	if err := s.contexts.Save(ctx, rec); err != nil {
		return err
	}

	return s.resolveLocalDir(ctx)
}

// resolveLocalDir decides which folder the local scope maps to: the
// effective project's registered folder, or the raw working folder when the
// project has none.
func (s *Service) resolveLocalDir(ctx context.Context) error {
	folder, ok, err := s.registry.FolderByProject(ctx, s.project)
	if err != nil {
		return err
	}
	if ok && folder != "" {
		s.localDir = folder
	} else {
		s.localDir = s.workDir
	}
	return nil
}

// Project returns the effective project resolved for this invocation.
func (s *Service) Project() string {
	return s.project
}

// WorkDir returns the working folder the context was evaluated in.
func (s *Service) WorkDir() string {
	return s.workDir
}

// StorePath returns the store file a single-file scope resolves to. Used by
// commands that watch or report on the underlying files.
func (s *Service) StorePath(scope core.Scope) string {
	if scope == core.ScopeGlobal {
		return s.layout.GlobalStorePath()
	}
	return s.layout.LocalStorePath(s.localDir)
}

// NewLog creates and persists a journal entry. The project defaults to the
// effective project, the author to the configured default and then
// "Anonymous". For local logs the project's folder registration is ensured.
func (s *Service) NewLog(ctx context.Context, content string, tags []string, author, project string, preferLocal bool) (core.LogEntry, error) {
	if strings.TrimSpace(content) == "" {
		return core.LogEntry{}, core.ErrEmptyContent
	}

	if project == "" {
		project = s.project
	}
	if author == "" {
		author = s.config.Author
	}

	entry := core.NewLogEntry(content, tags, author, project, s.now())

	scope := core.ScopeGlobal
	if preferLocal {
		scope = core.ScopeLocal
	}
	if err := s.store.Insert(ctx, entry, scope); err != nil {
		return core.LogEntry{}, err
	}

	if preferLocal {
		if _, ok, err := s.registry.FolderByProject(ctx, project); err != nil {
			return core.LogEntry{}, err
		} else if !ok {
			if err := s.registry.Register(ctx, project, s.workDir); err != nil {
				return core.LogEntry{}, err
			}
		}
	}

	if err := s.UpdateContext(ctx, content); err != nil {
		return core.LogEntry{}, err
	}

	if s.logger != nil {
		s.logger.Debug("log saved", "id", entry.ID, "project", project, "scope", scope)
	}
	return entry, nil
}

// AllLogs returns every entry at the given scope, in storage order.
func (s *Service) AllLogs(ctx context.Context, scope core.Scope) ([]core.LogEntry, error) {
	return s.store.Read(ctx, scope)
}

// FindLog returns the entries matching id at the given scope. An absent id
// yields an empty slice, never an error.
func (s *Service) FindLog(ctx context.Context, id int64, scope core.Scope) ([]core.LogEntry, error) {
	logs, err := s.store.Read(ctx, scope)
	if err != nil {
		return nil, err
	}

	var found []core.LogEntry
	for _, e := range logs {
		if e.ID == id {
			found = append(found, e)
		}
	}
	return found, nil
}

// DeleteLog removes the entry with the given id, reporting whether anything
// was removed. Idempotent: a repeat call returns false.
func (s *Service) DeleteLog(ctx context.Context, id int64, preferLocal bool) (bool, error) {
	scope := core.ScopeGlobal
	if preferLocal {
		scope = core.ScopeLocal
	}
	return s.store.Delete(ctx, id, scope)
}

// DeleteAllLogs truncates the store at the chosen scope.
func (s *Service) DeleteAllLogs(ctx context.Context, preferLocal bool) error {
	scope := core.ScopeGlobal
	if preferLocal {
		scope = core.ScopeLocal
	}
	return s.store.DeleteAll(ctx, scope)
}

// SwitchProject explicitly activates a project: manual mode sticks across
// folder changes until the registry stops backing it. The working folder is
// registered to the project only when the project has no folder yet.
func (s *Service) SwitchProject(ctx context.Context, name, note string) (core.Context, error) {
	rec, err := s.contexts.Load(ctx)
	if err != nil {
		return core.Context{}, err
	}

	rec.Current = name
	rec.Manual = true
	rec.LastFolder = s.workDir
	if rec.Projects == nil {
		rec.Projects = make(map[string]core.ProjectActivity)
	}
	rec.Projects[name] = core.ProjectActivity{
		LastNote:  note,
		Timestamp: s.now().UnixMilli(),
	}

	if _, ok, err := s.registry.FolderByProject(ctx, name); err != nil {
		return core.Context{}, err
	} else if !ok {
		if err := s.registry.Register(ctx, name, s.workDir); err != nil {
			return core.Context{}, err
		}
	}

	if err := s.contexts.Save(ctx, rec); err != nil {
		return core.Context{}, err
	}

	s.project = name
	if err := s.resolveLocalDir(ctx); err != nil {
		return core.Context{}, err
	}
	return rec, nil
}

// UpdateContext merges a new last note into the current project's activity
// record and bumps its timestamp. With no current project it silently
// skips; this must never fail a logging command.
func (s *Service) UpdateContext(ctx context.Context, lastNote string) error {
	rec, err := s.contexts.Load(ctx)
	if err != nil {
		return err
	}
	if rec.Current == "" {
		return nil
	}

	rec.Touch(rec.Current, lastNote, s.now())
	return s.contexts.Save(ctx, rec)
}

// Context returns the persisted project context.
func (s *Service) Context(ctx context.Context) (core.Context, error) {
	return s.contexts.Load(ctx)
}

// Projects returns the registry's full project -> folder table.
func (s *Service) Projects(ctx context.Context) (map[string]string, error) {
	return s.registry.AllProjects(ctx)
}

// Resume returns the current project's activity record, if any: the latest
// note and when the project was last touched.
func (s *Service) Resume(ctx context.Context) (string, core.ProjectActivity, bool, error) {
	rec, err := s.contexts.Load(ctx)
	if err != nil {
		return "", core.ProjectActivity{}, false, err
	}
	if rec.Current == "" {
		return "", core.ProjectActivity{}, false, nil
	}
	activity, ok := rec.Projects[rec.Current]
	return rec.Current, activity, ok, nil
}

// Search runs a ranked query at the given scope. Zero-valued options pick
// up the configured defaults.
func (s *Service) Search(ctx context.Context, query string, filters search.Filters, scope core.Scope, opts search.Options) ([]search.Result, error) {
	if opts.Threshold <= 0 {
		opts.Threshold = s.config.Search.Threshold
	}
	if opts.Limit <= 0 {
		opts.Limit = s.config.Search.Limit
	}
	return s.engine.Search(ctx, query, filters, scope, opts)
}

// Config returns the effective configuration.
func (s *Service) Config() Config {
	return s.config
}
