package cache

import (
	"context"
	"time"

	"transit-manager/core/transit"

	"go.uber.org/zap"
)

// Store caches stops and bus lists for the resolver.
type Store struct {
	stops  *Cache[int, *transit.Stop]
	buses  *Cache[int, []*transit.Bus]
	logger *zap.Logger
}

// NewStore creates a Store from cfg and starts both sweeps.
func NewStore(cfg Config, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		stops:  New[int, *transit.Stop](time.Duration(cfg.StopTTLSeconds) * time.Second),
		buses:  New[int, []*transit.Bus](time.Duration(cfg.BusTTLSeconds) * time.Second),
		logger: logger,
	}
}

// Close stops the background sweeps.
func (s *Store) Close() {
	s.stops.Close()
	s.buses.Close()
}

// GetStop returns a cached stop or a KindStopNotFound error.
func (s *Store) GetStop(ctx context.Context, stopID int) (*transit.Stop, error) {
	stop, ok := s.stops.Get(stopID)
	if !ok {
		return nil, transit.NewError(transit.KindStopNotFound, "stop %d not cached", stopID)
	}
	return stop.Clone(), nil
}

// SaveStop caches a stop. With update false a cached stop is kept.
func (s *Store) SaveStop(ctx context.Context, stop *transit.Stop, update bool) error {
	if update {
		s.stops.Set(stop.ID, stop.Clone())
		return nil
	}
	if !s.stops.SetIfAbsent(stop.ID, stop.Clone()) {
		s.logger.Debug("Stop already cached", zap.Int("stop_id", stop.ID))
	}
	return nil
}

// DeleteStop evicts a stop.
func (s *Store) DeleteStop(ctx context.Context, stopID int) error {
	s.stops.Delete(stopID)
	return nil
}

// GetBuses returns a cached bus list. A miss is reported as an unavailable getter so
// the resolver moves on to the next source.
func (s *Store) GetBuses(ctx context.Context, stopID int) ([]*transit.Bus, error) {
	buses, ok := s.buses.Get(stopID)
	if !ok {
		return nil, transit.NewError(transit.KindBusGetterUnavailable, "buses of stop %d not cached", stopID)
	}
	return cloneBuses(buses), nil
}

// SaveBuses caches the bus list of a stop.
func (s *Store) SaveBuses(ctx context.Context, stopID int, buses []*transit.Bus) error {
	s.buses.Set(stopID, cloneBuses(buses))
	return nil
}

// DeleteBuses evicts the bus list of a stop.
func (s *Store) DeleteBuses(ctx context.Context, stopID int) error {
	s.buses.Delete(stopID)
	return nil
}

func cloneBuses(buses []*transit.Bus) []*transit.Bus {
	out := make([]*transit.Bus, len(buses))
	for i, b := range buses {
		c := *b
		out[i] = &c
	}
	return out
}
