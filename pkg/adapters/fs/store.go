package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rupanjan/devlog/pkg/core"
)

// storeFile is the on-disk shape of a log database. A store file, once
// created, always deserializes to this shape; anything else is repaired.
type storeFile struct {
	Logs []core.LogEntry `json:"logs"`
}

// Store implements core.LogStore on top of flat JSON files: one global
// database under the user's home and one local database per registered
// folder. Every mutation rewrites the whole file through an atomic
// temp-write-then-rename, guarded by a cross-process lock.
type Store struct {
	layout   Layout
	localDir string
	registry core.Registry
	logger   *slog.Logger
}

// NewStore creates a filesystem-backed log store. localDir is the folder the
// local scope resolves to for this invocation: the current effective
// project's registered folder, or the raw working folder when unregistered.
func NewStore(layout Layout, localDir string, registry core.Registry, logger *slog.Logger) *Store {
	return &Store{
		layout:   layout,
		localDir: localDir,
		registry: registry,
		logger:   logger,
	}
}

// path resolves the concrete file location for a single-file scope.
func (s *Store) path(scope core.Scope) (string, error) {
	switch scope {
	case core.ScopeGlobal:
		return s.layout.GlobalStorePath(), nil
	case core.ScopeLocal:
		return s.layout.LocalStorePath(s.localDir), nil
	default:
		return "", fmt.Errorf("scope %q does not resolve to a single store file", scope)
	}
}

// Read returns every entry at the given scope. ScopeAll delegates to
// ReadAcrossFolders.
func (s *Store) Read(ctx context.Context, scope core.Scope) ([]core.LogEntry, error) {
	if scope == core.ScopeAll {
		return s.ReadAcrossFolders(ctx)
	}

	path, err := s.path(scope)
	if err != nil {
		return nil, err
	}
	db, err := s.load(path)
	if err != nil {
		return nil, err
	}
	return db.Logs, nil
}

// Insert appends an entry and persists the whole store.
func (s *Store) Insert(ctx context.Context, entry core.LogEntry, scope core.Scope) error {
	path, err := s.path(scope)
	if err != nil {
		return err
	}

	unlock, err := acquireLock(path)
	if err != nil {
		return err
	}
	defer unlock()

	db, err := s.load(path)
	if err != nil {
		return err
	}
	db.Logs = append(db.Logs, entry)
	return s.save(path, db)
}

// Delete removes every entry with the given id, reporting whether any were
// removed. A second call for the same id returns false and leaves the store
// unchanged.
func (s *Store) Delete(ctx context.Context, id int64, scope core.Scope) (bool, error) {
	path, err := s.path(scope)
	if err != nil {
		return false, err
	}

	unlock, err := acquireLock(path)
	if err != nil {
		return false, err
	}
	defer unlock()

	db, err := s.load(path)
	if err != nil {
		return false, err
	}

	kept := db.Logs[:0]
	for _, e := range db.Logs {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	removed := len(kept) < len(db.Logs)
	if !removed {
		return false, nil
	}

	db.Logs = kept
	if err := s.save(path, db); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteAll truncates the store at the given scope to empty.
func (s *Store) DeleteAll(ctx context.Context, scope core.Scope) error {
	path, err := s.path(scope)
	if err != nil {
		return err
	}

	unlock, err := acquireLock(path)
	if err != nil {
		return err
	}
	defer unlock()

	return s.save(path, storeFile{Logs: []core.LogEntry{}})
}

// ReadAcrossFolders concatenates the global store's entries with the entries
// of every registered folder. Folders whose local file is missing or
// unreadable contribute nothing; the aggregate read never aborts on them.
func (s *Store) ReadAcrossFolders(ctx context.Context) ([]core.LogEntry, error) {
	db, err := s.load(s.layout.GlobalStorePath())
	if err != nil {
		return nil, err
	}
	logs := db.Logs

	folders, err := s.registry.Folders(ctx)
	if err != nil {
		return nil, err
	}

	for _, folder := range folders {
		path := s.layout.LocalStorePath(folder)
		entries, err := readFolderLogs(path)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("skipping unreadable local store", "path", path, "error", err)
			}
			continue
		}
		logs = append(logs, entries...)
	}

	return logs, nil
}

// load reads a store file, repairing it when missing, empty or corrupt.
// Unrecoverable I/O errors (permissions, disk) propagate unchanged.
func (s *Store) load(path string) (storeFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return storeFile{}, fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s.repair(path, nil)
	}
	if err != nil {
		return storeFile{}, fmt.Errorf("failed to read store %s: %w", path, err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return s.repair(path, fmt.Errorf("empty file"))
	}

	var db storeFile
	if err := json.Unmarshal(data, &db); err != nil {
		return s.repair(path, err)
	}
	if db.Logs == nil {
		db.Logs = []core.LogEntry{}
	}
	return db, nil
}

// repair reinitializes a store file to its empty form and persists it.
// cause is nil for a plainly missing file.
func (s *Store) repair(path string, cause error) (storeFile, error) {
	if cause != nil && s.logger != nil {
		cerr := &core.CorruptDataError{Path: path, Err: cause}
		s.logger.Warn("reinitializing store", "warning", cerr.Error())
	}

	db := storeFile{Logs: []core.LogEntry{}}
	if err := s.save(path, db); err != nil {
		return storeFile{}, err
	}
	return db, nil
}

// save serializes the full collection back to disk atomically.
func (s *Store) save(path string, db storeFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize store: %w", err)
	}

	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write store %s: %w", path, err)
	}
	return nil
}

// readFolderLogs reads another folder's local store without repairing it.
// Aggregate reads must not plant .devtrack directories in folders they only
// visit.
func readFolderLogs(path string) ([]core.LogEntry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var db storeFile
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, err
	}
	return db.Logs, nil
}
