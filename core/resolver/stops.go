package resolver

import (
	"context"
	"time"

	"transit-manager/core/metrics"
	"transit-manager/core/transit"

	"go.uber.org/zap"
)

// FindStop looks a stop up across the Stop Getters selected by scope.
func (r *Resolver) FindStop(ctx context.Context, stopID int, scope Scope, autoSave AutoSave) (stop *transit.Stop, err error) {
	started := time.Now()
	defer func() { metrics.ObserveOperation("find_stop", outcome(err), started) }()

	r.mu.RLock()
	getters := r.selectStopGetters(scope)
	r.mu.RUnlock()

	if len(getters) == 0 {
		return nil, transit.NewError(transit.KindMissingGetters, "no %s stop getters registered", scope)
	}

	l := r.log.With(zap.Int("stop_id", stopID), zap.String("scope", scope.String()))
	errored := false

	for _, g := range getters {
		found, gerr := g.impl.GetStop(ctx, stopID)
		if gerr == nil && found == nil {
			gerr = transit.ErrStopNotFound
		}
		metrics.ObserveSourceCall(string(RoleStopGetter), g.name, outcome(gerr))

		switch transit.KindOf(gerr) {
		case transit.KindNone:
			l.Debug("Stop found", zap.String("source", g.name), zap.String("kind", g.kind.String()))
			if g.kind == Online && r.autoSave(autoSave) {
				r.autoSaveStop(ctx, l, found)
			}
			return found, nil
		case transit.KindStopNotFound:
			l.Debug("Stop not found in source", zap.String("source", g.name))
		case transit.KindStopNotExist:
			l.Debug("Stop confirmed not to exist", zap.String("source", g.name))
			return nil, gerr
		default:
			errored = true
			l.Warn("Stop getter failed", zap.String("source", g.name), zap.Error(gerr))
		}
	}

	if errored {
		return nil, transit.NewError(transit.KindStopGetterUnavailable,
			"stop %d not found and at least one of %d stop getters failed", stopID, len(getters))
	}
	return nil, transit.NewError(transit.KindStopNotFound, "stop %d not found in %d stop getters", stopID, len(getters))
}

func (r *Resolver) autoSave(a AutoSave) bool {
	switch a {
	case AutoSaveEnabled:
		return true
	case AutoSaveDisabled:
		return false
	default:
		return r.cfg.AutoSaveStop
	}
}

// autoSaveStop writes a stop found online. Failures never reach the caller.
func (r *Resolver) autoSaveStop(ctx context.Context, l *zap.Logger, stop *transit.Stop) {
	if err := r.SaveStop(ctx, stop, true, FanOutDefault); err != nil {
		l.Warn("Auto-save of stop failed", zap.Error(err))
	}
}

// SaveStop writes a stop through the Stop Setters. With update false, setters keep
// an existing record untouched.
func (r *Resolver) SaveStop(ctx context.Context, stop *transit.Stop, update bool, fanOut FanOut) (err error) {
	started := time.Now()
	defer func() { metrics.ObserveOperation("save_stop", outcome(err), started) }()

	if stop == nil {
		return transit.NewError(transit.KindStopSetterUnavailable, "nil stop")
	}

	r.mu.RLock()
	setters := r.stopSetters.snapshot()
	r.mu.RUnlock()

	if len(setters) == 0 {
		return transit.NewError(transit.KindMissingSetters, "no stop setters registered")
	}
	if err := stop.Validate(); err != nil {
		return transit.Wrap(transit.KindStopSetterUnavailable, err, "stop %d rejected", stop.ID)
	}

	return runFanOut(r.log.With(zap.Int("stop_id", stop.ID)), fanOutCall[StopSetter]{
		op:          "save stop",
		role:        RoleStopSetter,
		entries:     setters,
		all:         fanOut.resolve(r.cfg.UseAllStopSetters),
		missingKind: transit.KindMissingSetters,
		failKind:    transit.KindStopSetterUnavailable,
		subject:     stop.ID,
		call:        func(s StopSetter) error { return s.SaveStop(ctx, stop, update) },
	})
}

// DeleteStop removes a stop through the Stop Deleters. A deleter that has nothing to
// delete counts as a success.
func (r *Resolver) DeleteStop(ctx context.Context, stopID int, fanOut FanOut) (err error) {
	started := time.Now()
	defer func() { metrics.ObserveOperation("delete_stop", outcome(err), started) }()

	r.mu.RLock()
	deleters := r.stopDeleters.snapshot()
	r.mu.RUnlock()

	return runFanOut(r.log.With(zap.Int("stop_id", stopID)), fanOutCall[StopDeleter]{
		op:          "delete stop",
		role:        RoleStopDeleter,
		entries:     deleters,
		all:         fanOut.resolve(r.cfg.UseAllStopDeleters),
		missingKind: transit.KindMissingDeleters,
		failKind:    transit.KindStopDeleterUnavailable,
		subject:     stopID,
		benign:      absent,
		call:        func(d StopDeleter) error { return d.DeleteStop(ctx, stopID) },
	})
}

func absent(k transit.Kind) bool {
	return k == transit.KindStopNotFound || k == transit.KindStopNotExist
}
