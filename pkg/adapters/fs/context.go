package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rupanjan/devlog/pkg/core"
)

// ContextStore persists the single project-context record as a JSON file.
type ContextStore struct {
	layout Layout
	logger *slog.Logger
}

// NewContextStore creates a filesystem-backed context store.
func NewContextStore(layout Layout, logger *slog.Logger) *ContextStore {
	return &ContextStore{layout: layout, logger: logger}
}

// Load reads the persisted context. A missing or unreadable record yields
// empty defaults; the context is rewritten by the next mutating command
// anyway, so Load never repairs the file itself.
func (c *ContextStore) Load(ctx context.Context) (core.Context, error) {
	path := c.layout.ContextPath()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return core.NewContext(), nil
	}
	if err != nil {
		return core.Context{}, fmt.Errorf("failed to read context: %w", err)
	}

	var rec core.Context
	if err := json.Unmarshal(data, &rec); err != nil {
		if c.logger != nil {
			cerr := &core.CorruptDataError{Path: path, Err: err}
			c.logger.Warn("discarding corrupt context", "warning", cerr.Error())
		}
		return core.NewContext(), nil
	}
	if rec.Projects == nil {
		rec.Projects = make(map[string]core.ProjectActivity)
	}
	return rec, nil
}

// Save rewrites the persisted context atomically.
func (c *ContextStore) Save(ctx context.Context, rec core.Context) error {
	path := c.layout.ContextPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create context directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize context: %w", err)
	}
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write context: %w", err)
	}
	return nil
}
