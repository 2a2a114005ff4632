package sources

import (
	"transit-manager/core/resolver"

	"go.uber.org/zap"
)

// Registry lists registrations.
type Registry interface {
	Sources() []resolver.Registration
}

// Report is the body of GET /sources.
type Report struct {
	Sources []resolver.Registration `json:"sources"`
	Counts  map[resolver.Role]int   `json:"counts"`
}

// Service builds source reports.
type Service struct {
	registry Registry
	logger   *zap.Logger
}

// NewService creates a new sources service.
func NewService(registry Registry, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{registry: registry, logger: logger}
}

// Report lists the registrations, optionally only those of role.
func (s *Service) Report(role resolver.Role) Report {
	report := Report{Sources: []resolver.Registration{}, Counts: map[resolver.Role]int{}}
	for _, reg := range s.registry.Sources() {
		if role != "" && reg.Role != role {
			continue
		}
		report.Sources = append(report.Sources, reg)
		report.Counts[reg.Role]++
	}
	return report
}
