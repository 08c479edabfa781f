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

// Registry implements core.Registry as a single durable JSON table mapping
// project names to folder paths. Reads always reload from disk; a CLI
// invocation is a fresh process and never caches across runs.
type Registry struct {
	layout Layout
	logger *slog.Logger
}

// NewRegistry creates a filesystem-backed registry.
func NewRegistry(layout Layout, logger *slog.Logger) *Registry {
	return &Registry{layout: layout, logger: logger}
}

// Register binds name to folder. If name is already bound to a different
// folder the call is a no-op: the first registration wins, so a project's
// log history is never silently relocated.
func (r *Registry) Register(ctx context.Context, name, folder string) error {
	path := r.layout.RegistryPath()

	unlock, err := acquireLock(path)
	if err != nil {
		return err
	}
	defer unlock()

	table, err := r.load(path)
	if err != nil {
		return err
	}

	if existing, ok := table[name]; ok && existing != folder {
		if r.logger != nil {
			r.logger.Debug("project already registered, keeping existing mapping",
				"project", name, "existing", existing, "requested", folder)
		}
		return nil
	}

	table[name] = folder
	return r.save(path, table)
}

// FolderByProject resolves a project name to its registered folder.
func (r *Registry) FolderByProject(ctx context.Context, name string) (string, bool, error) {
	table, err := r.load(r.layout.RegistryPath())
	if err != nil {
		return "", false, err
	}
	folder, ok := table[name]
	return folder, ok, nil
}

// ProjectByFolder resolves a folder to its project name by exact path
// equality after normalization to an absolute path.
func (r *Registry) ProjectByFolder(ctx context.Context, folder string) (string, bool, error) {
	table, err := r.load(r.layout.RegistryPath())
	if err != nil {
		return "", false, err
	}

	target, err := filepath.Abs(folder)
	if err != nil {
		return "", false, err
	}

	for name, p := range table {
		resolved, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if resolved == target {
			return name, true, nil
		}
	}
	return "", false, nil
}

// AllProjects returns the full name -> folder table.
func (r *Registry) AllProjects(ctx context.Context) (map[string]string, error) {
	return r.load(r.layout.RegistryPath())
}

// Folders returns every registered folder path, deduplicated. Several
// project names may bind to the same folder (a folder-inferred project plus
// an explicit switch in the same directory); aggregate reads must visit that
// folder once.
func (r *Registry) Folders(ctx context.Context) ([]string, error) {
	table, err := r.load(r.layout.RegistryPath())
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(table))
	folders := make([]string, 0, len(table))
	for _, folder := range table {
		if folder == "" {
			continue
		}
		key := folder
		if resolved, err := filepath.Abs(folder); err == nil {
			key = resolved
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		folders = append(folders, folder)
	}
	return folders, nil
}

// load reads the registry table, repairing a missing, empty or corrupt file
// to an empty table.
func (r *Registry) load(path string) (map[string]string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r.repair(path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return r.repair(path, fmt.Errorf("empty file"))
	}

	var table map[string]string
	if err := json.Unmarshal(data, &table); err != nil {
		return r.repair(path, err)
	}
	if table == nil {
		table = make(map[string]string)
	}
	return table, nil
}

func (r *Registry) repair(path string, cause error) (map[string]string, error) {
	if cause != nil && r.logger != nil {
		cerr := &core.CorruptDataError{Path: path, Err: cause}
		r.logger.Warn("reinitializing registry", "warning", cerr.Error())
	}

	table := make(map[string]string)
	if err := r.save(path, table); err != nil {
		return nil, err
	}
	return table, nil
}

func (r *Registry) save(path string, table map[string]string) error {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize registry: %w", err)
	}
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}
