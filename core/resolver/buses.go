package resolver

import (
	"context"
	"time"

	"transit-manager/core/metrics"
	"transit-manager/core/transit"

	"go.uber.org/zap"
)

// GetBuses returns the buses of the first Bus Getter that answers, sorted by sortBy.
// Results from different getters are never merged.
func (r *Resolver) GetBuses(ctx context.Context, stopID int, sortBy transit.SortMethod, reverse bool) (buses []*transit.Bus, err error) {
	started := time.Now()
	defer func() { metrics.ObserveOperation("get_buses", outcome(err), started) }()

	r.mu.RLock()
	getters := r.busGetters.snapshot()
	r.mu.RUnlock()

	if len(getters) == 0 {
		return nil, transit.NewError(transit.KindMissingGetters, "no bus getters registered")
	}

	l := r.log.With(zap.Int("stop_id", stopID))
	for _, g := range getters {
		found, gerr := g.impl.GetBuses(ctx, stopID)
		metrics.ObserveSourceCall(string(RoleBusGetter), g.name, outcome(gerr))

		switch transit.KindOf(gerr) {
		case transit.KindNone:
			if found == nil {
				found = []*transit.Bus{}
			}
			transit.SortBuses(found, sortBy, reverse)
			l.Debug("Buses found", zap.String("source", g.name), zap.Int("count", len(found)))
			return found, nil
		case transit.KindStopNotExist:
			return nil, gerr
		default:
			l.Warn("Bus getter failed", zap.String("source", g.name), zap.Error(gerr))
		}
	}

	return nil, transit.NewError(transit.KindBusGetterUnavailable, "buses of stop %d unavailable in all %d bus getters", stopID, len(getters))
}

// SaveBuses stores the buses of a stop through the Bus Setters.
func (r *Resolver) SaveBuses(ctx context.Context, stopID int, buses []*transit.Bus, fanOut FanOut) (err error) {
	started := time.Now()
	defer func() { metrics.ObserveOperation("save_buses", outcome(err), started) }()

	r.mu.RLock()
	setters := r.busSetters.snapshot()
	r.mu.RUnlock()

	return runFanOut(r.log.With(zap.Int("stop_id", stopID)), fanOutCall[BusSetter]{
		op:          "save buses of stop",
		role:        RoleBusSetter,
		entries:     setters,
		all:         fanOut.resolve(r.cfg.UseAllBusSetters),
		missingKind: transit.KindMissingSetters,
		failKind:    transit.KindBusSetterUnavailable,
		subject:     stopID,
		call:        func(s BusSetter) error { return s.SaveBuses(ctx, stopID, buses) },
	})
}

// DeleteBuses removes the stored buses of a stop through the Bus Deleters.
func (r *Resolver) DeleteBuses(ctx context.Context, stopID int, fanOut FanOut) (err error) {
	started := time.Now()
	defer func() { metrics.ObserveOperation("delete_buses", outcome(err), started) }()

	r.mu.RLock()
	deleters := r.busDeleters.snapshot()
	r.mu.RUnlock()

	return runFanOut(r.log.With(zap.Int("stop_id", stopID)), fanOutCall[BusDeleter]{
		op:          "delete buses of stop",
		role:        RoleBusDeleter,
		entries:     deleters,
		all:         fanOut.resolve(r.cfg.UseAllBusDeleters),
		missingKind: transit.KindMissingDeleters,
		failKind:    transit.KindBusDeleterUnavailable,
		subject:     stopID,
		benign:      absent,
		call:        func(d BusDeleter) error { return d.DeleteBuses(ctx, stopID) },
	})
}
