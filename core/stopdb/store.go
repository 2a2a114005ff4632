package stopdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transit-manager/core/database"
	"transit-manager/core/transit"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store is a SQL backed stop store.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Store. With migrate set the stops table is created or updated,
// otherwise the existing table must already hold every required column.
func New(db *gorm.DB, migrate bool, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{db: db, logger: logger, now: time.Now}

	if migrate {
		if err := db.AutoMigrate(&stopRow{}); err != nil {
			return nil, fmt.Errorf("failed to migrate stops table: %w", err)
		}
		return s, nil
	}
	if err := s.CheckSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// CheckSchema verifies the stops table has every column the store writes.
func (s *Store) CheckSchema() error {
	missing, err := database.MissingColumns(s.db, stopRow{}.TableName(), requiredColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("stops table is missing columns %v", missing)
	}
	return nil
}

// GetStop reads a stop by id.
func (s *Store) GetStop(ctx context.Context, stopID int) (*transit.Stop, error) {
	var row stopRow
	err := s.db.WithContext(ctx).Where("id = ?", stopID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, transit.NewError(transit.KindStopNotFound, "stop %d not found in database", stopID)
	}
	if err != nil {
		return nil, transit.Wrap(transit.KindStopGetterUnavailable, err, "database lookup of stop %d", stopID)
	}

	stop, err := row.toStop()
	if err != nil {
		return nil, transit.Wrap(transit.KindStopGetterUnavailable, err, "database row of stop %d", stopID)
	}
	return stop, nil
}

// SaveStop inserts a stop, or overwrites it when update is true. The original
// insertion time is kept on updates.
func (s *Store) SaveStop(ctx context.Context, stop *transit.Stop, update bool) error {
	row, err := toRow(stop, s.now().Unix())
	if err != nil {
		return transit.Wrap(transit.KindStopSetterUnavailable, err, "database save of stop %d", stop.ID)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&stopRow{}).Where("id = ?", stop.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return tx.Create(row).Error
		}
		if !update {
			return nil
		}
		return tx.Model(&stopRow{}).Where("id = ?", stop.ID).Updates(map[string]any{
			"name":    row.Name,
			"lat":     row.Lat,
			"lon":     row.Lon,
			"other":   row.Other,
			"updated": row.Updated,
		}).Error
	})
	if err != nil {
		return transit.Wrap(transit.KindStopSetterUnavailable, err, "database save of stop %d", stop.ID)
	}
	s.logger.Debug("Stop saved to database", zap.Int("stop_id", stop.ID), zap.Bool("update", update))
	return nil
}

// DeleteStop removes a stop. Deleting a missing stop is not an error.
func (s *Store) DeleteStop(ctx context.Context, stopID int) error {
	res := s.db.WithContext(ctx).Where("id = ?", stopID).Delete(&stopRow{})
	if res.Error != nil {
		return transit.Wrap(transit.KindStopDeleterUnavailable, res.Error, "database delete of stop %d", stopID)
	}
	s.logger.Debug("Stop deleted from database", zap.Int("stop_id", stopID), zap.Int64("rows", res.RowsAffected))
	return nil
}

// ListStopIDs returns every stored id in ascending order.
func (s *Store) ListStopIDs(ctx context.Context) ([]int, error) {
	var ids []int
	if err := s.db.WithContext(ctx).Model(&stopRow{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list stop ids: %w", err)
	}
	return ids, nil
}
