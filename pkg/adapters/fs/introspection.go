package fs

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	GlobalPath string `json:"global_path"`
	LocalPath  string `json:"local_path"`
	LocalDir   string `json:"local_dir"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return StoreState{
		GlobalPath: s.layout.GlobalStorePath(),
		LocalPath:  s.layout.LocalStorePath(s.localDir),
		LocalDir:   s.localDir,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
