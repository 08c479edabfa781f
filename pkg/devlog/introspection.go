package devlog

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	EffectiveProject string `json:"effective_project"`
	WorkDir          string `json:"work_dir"`
	LocalDir         string `json:"local_dir"`
	StoreType        string `json:"store_type"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	storeType := "store"
	if comp, ok := s.store.(introspection.Component); ok {
		storeType = comp.ComponentType()
	}

	return ServiceState{
		EffectiveProject: s.project,
		WorkDir:          s.workDir,
		LocalDir:         s.localDir,
		StoreType:        storeType,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
