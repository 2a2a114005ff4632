package reconcile

import (
	"context"

	"transit-manager/core/resolver"
	"transit-manager/core/transit"

	"go.uber.org/zap"
)

// Migrate copies every stop held by origin into dest.
func Migrate(ctx context.Context, origin Source, dest resolver.StopSetter, opts MigrateOptions, logger *zap.Logger) (*MigrationReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ids, err := origin.ListStopIDs(ctx)
	if err != nil {
		return nil, transit.Wrap(transit.KindStopGetterUnavailable, err, "list origin stops")
	}

	report := &MigrationReport{Found: ids, Migrated: []int{}, Failed: []int{}, DryRun: opts.DryRun}
	if opts.DryRun {
		logger.Info("Dry-run migration", zap.Int("found", len(ids)))
		return report, nil
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		stop, err := origin.GetStop(ctx, id)
		if err == nil && stop == nil {
			err = transit.ErrStopNotFound
		}
		if err != nil {
			logger.Warn("Origin stop could not be read", zap.Int("stop_id", id), zap.Error(err))
			report.Failed = append(report.Failed, id)
			continue
		}

		if err := dest.SaveStop(ctx, stop, opts.Update); err != nil {
			logger.Warn("Stop could not be migrated", zap.Int("stop_id", id), zap.Error(err))
			report.Failed = append(report.Failed, id)
			continue
		}
		report.Migrated = append(report.Migrated, id)
	}

	logger.Info("Migration finished",
		zap.Int("found", len(report.Found)),
		zap.Int("migrated", len(report.Migrated)),
		zap.Int("failed", len(report.Failed)),
	)
	return report, nil
}
