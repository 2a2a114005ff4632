package stops

import (
	"context"
	"fmt"

	"transit-manager/core/resolver"
	"transit-manager/core/transit"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Resolver is the subset of *resolver.Resolver the service needs.
type Resolver interface {
	FindStop(ctx context.Context, stopID int, scope resolver.Scope, autoSave resolver.AutoSave) (*transit.Stop, error)
	SaveStop(ctx context.Context, stop *transit.Stop, update bool, fanOut resolver.FanOut) error
	DeleteStop(ctx context.Context, stopID int, fanOut resolver.FanOut) error
	GetBuses(ctx context.Context, stopID int, sortBy transit.SortMethod, reverse bool) ([]*transit.Bus, error)
	SaveBuses(ctx context.Context, stopID int, buses []*transit.Bus, fanOut resolver.FanOut) error
}

// Service handles stop and bus operations.
type Service struct {
	resolver Resolver
	logger   *zap.Logger
	group    singleflight.Group
}

// NewService creates a new stops service.
func NewService(r Resolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{resolver: r, logger: logger}
}

// FindStop looks a stop up. Concurrent calls with the same arguments share one lookup
// and each caller gets its own copy of the result.
func (s *Service) FindStop(ctx context.Context, stopID int, scope resolver.Scope, autoSave resolver.AutoSave) (*transit.Stop, error) {
	key := fmt.Sprintf("%d/%d/%d", stopID, scope, autoSave)
	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.resolver.FindStop(context.WithoutCancel(ctx), stopID, scope, autoSave)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Shared stop lookup", zap.Int("stop_id", stopID))
	}
	return v.(*transit.Stop).Clone(), nil
}

// SaveStop writes a stop through the resolver.
func (s *Service) SaveStop(ctx context.Context, stop *transit.Stop, update bool, fanOut resolver.FanOut) error {
	return s.resolver.SaveStop(ctx, stop, update, fanOut)
}

// DeleteStop removes a stop through the resolver.
func (s *Service) DeleteStop(ctx context.Context, stopID int, fanOut resolver.FanOut) error {
	return s.resolver.DeleteStop(ctx, stopID, fanOut)
}

// GetBuses lists the buses of a stop. With save set the result is also written to the
// Bus Setters; a failed write is logged and does not fail the lookup.
func (s *Service) GetBuses(ctx context.Context, stopID int, sortBy transit.SortMethod, reverse, save bool) ([]*transit.Bus, error) {
	buses, err := s.resolver.GetBuses(ctx, stopID, sortBy, reverse)
	if err != nil {
		return nil, err
	}
	if save {
		if err := s.resolver.SaveBuses(ctx, stopID, buses, resolver.FanOutDefault); err != nil {
			s.logger.Warn("Failed to save buses", zap.Int("stop_id", stopID), zap.Error(err))
		}
	}
	return buses, nil
}
