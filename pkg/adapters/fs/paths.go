package fs

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDir is the hidden directory under the user's home that holds the
	// global store and CLI state.
	GlobalDir = ".devlog"
	// TrackDir is the hidden directory used for the registry, the context
	// record and per-folder local stores. The split between the two names is
	// historical; changing it would orphan existing journals.
	TrackDir = ".devtrack"
)

// Layout resolves every on-disk location the journal uses. The zero value is
// not usable; build one with NewLayout. Home is injectable so tests can run
// against a temporary directory.
type Layout struct {
	Home string
}

// NewLayout returns a layout rooted at home. An empty home falls back to the
// user's home directory.
func NewLayout(home string) (Layout, error) {
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return Layout{}, err
		}
		home = h
	}
	return Layout{Home: home}, nil
}

// GlobalStorePath is the single shared log database.
func (l Layout) GlobalStorePath() string {
	return filepath.Join(l.Home, GlobalDir, "db.json")
}

// RegistryPath is the durable project -> folder table.
func (l Layout) RegistryPath() string {
	return filepath.Join(l.Home, TrackDir, "registry.json")
}

// ContextPath is the persisted project-context record.
func (l Layout) ContextPath() string {
	return filepath.Join(l.Home, TrackDir, ".context.json")
}

// LocalStorePath is the log database kept inside a registered folder.
func (l Layout) LocalStorePath(folder string) string {
	return filepath.Join(folder, TrackDir, "logs.json")
}

// WelcomeMarkerPath gates the first-run welcome banner.
func (l Layout) WelcomeMarkerPath() string {
	return filepath.Join(l.Home, GlobalDir, ".welcome-shown")
}

// ConfigPath is the optional user configuration file.
func (l Layout) ConfigPath() string {
	return filepath.Join(l.Home, GlobalDir, "config.yaml")
}
