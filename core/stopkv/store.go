package stopkv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"transit-manager/core/transit"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const (
	stopPrefix = "stop:"
	busPrefix  = "buses:"
)

// record is the stored form of a stop.
type record struct {
	Stop    *transit.Stop `json:"stop"`
	Saved   int64         `json:"saved"`
	Updated int64         `json:"updated"`
}

// Store is a BadgerDB backed stop and bus store.
type Store struct {
	db     *badger.DB
	busTTL time.Duration
	logger *zap.Logger
	now    func() time.Time

	stopGC chan struct{}
	doneGC chan struct{}
}

// zapLogger adapts zap to BadgerDB's Logger interface.
type zapLogger struct {
	s *zap.SugaredLogger
}

func (l *zapLogger) Errorf(format string, args ...interface{})   { l.s.Errorf(format, args...) }
func (l *zapLogger) Warningf(format string, args ...interface{}) { l.s.Warnf(format, args...) }
func (l *zapLogger) Infof(format string, args ...interface{})    { l.s.Debugf(format, args...) }
func (l *zapLogger) Debugf(format string, args ...interface{})   { l.s.Debugf(format, args...) }

// Open opens the database described by cfg.
func Open(cfg Config, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.
		WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(&zapLogger{s: logger.Named("badger").Sugar()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	ttl := time.Duration(cfg.BusTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	s := &Store{
		db:     db,
		busTTL: ttl,
		logger: logger,
		now:    time.Now,
		stopGC: make(chan struct{}),
		doneGC: make(chan struct{}),
	}

	if cfg.GCIntervalSeconds > 0 && !cfg.InMemory {
		go s.runGC(time.Duration(cfg.GCIntervalSeconds) * time.Second)
	} else {
		close(s.doneGC)
	}
	return s, nil
}

func (s *Store) runGC(interval time.Duration) {
	defer close(s.doneGC)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// RunValueLogGC rewrites at most one file per call
			for s.db.RunValueLogGC(0.5) == nil {
			}
		case <-s.stopGC:
			return
		}
	}
}

// Close stops garbage collection and closes the database.
func (s *Store) Close() error {
	select {
	case <-s.stopGC:
	default:
		close(s.stopGC)
	}
	<-s.doneGC
	return s.db.Close()
}

func stopKey(id int) []byte {
	return []byte(stopPrefix + strconv.Itoa(id))
}

func busKey(id int) []byte {
	return []byte(busPrefix + strconv.Itoa(id))
}

// GetStop reads a stop by id.
func (s *Store) GetStop(ctx context.Context, stopID int) (*transit.Stop, error) {
	var rec record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(stopKey(stopID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, transit.NewError(transit.KindStopNotFound, "stop %d not found in key-value store", stopID)
	}
	if err != nil {
		return nil, transit.Wrap(transit.KindStopGetterUnavailable, err, "key-value lookup of stop %d", stopID)
	}
	if rec.Stop == nil {
		return nil, transit.NewError(transit.KindStopGetterUnavailable, "empty record for stop %d", stopID)
	}

	stop := rec.Stop
	if stop.Extra == nil {
		stop.Extra = map[string]any{}
	}
	stop.Extra["saved"] = rec.Saved
	stop.Extra["updated"] = rec.Updated
	return stop, nil
}

// SaveStop writes a stop. With update false an existing record is kept.
func (s *Store) SaveStop(ctx context.Context, stop *transit.Stop, update bool) error {
	now := s.now().Unix()
	err := s.db.Update(func(txn *badger.Txn) error {
		rec := record{Saved: now}

		item, err := txn.Get(stopKey(stop.ID))
		switch {
		case err == nil:
			if !update {
				return nil
			}
			var prev record
			if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &prev) }); err == nil && prev.Saved > 0 {
				rec.Saved = prev.Saved
			}
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		c := stop.Clone()
		if c.Extra != nil {
			delete(c.Extra, "saved")
			delete(c.Extra, "updated")
		}
		rec.Stop = c
		rec.Updated = now

		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return txn.Set(stopKey(stop.ID), data)
	})
	if err != nil {
		return transit.Wrap(transit.KindStopSetterUnavailable, err, "key-value save of stop %d", stop.ID)
	}
	return nil
}

// DeleteStop removes a stop. Deleting a missing key is not an error.
func (s *Store) DeleteStop(ctx context.Context, stopID int) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(stopKey(stopID))
	})
	if err != nil {
		return transit.Wrap(transit.KindStopDeleterUnavailable, err, "key-value delete of stop %d", stopID)
	}
	return nil
}

// ListStopIDs returns every stored stop id in ascending order.
func (s *Store) ListStopIDs(ctx context.Context) ([]int, error) {
	var ids []int
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(stopPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			id, err := strconv.Atoi(strings.TrimPrefix(key, stopPrefix))
			if err != nil {
				continue
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list stop ids: %w", err)
	}
	sort.Ints(ids)
	return ids, nil
}

// GetBuses reads the last saved bus list of a stop.
func (s *Store) GetBuses(ctx context.Context, stopID int) ([]*transit.Bus, error) {
	var buses []*transit.Bus
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(busKey(stopID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &buses)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, transit.NewError(transit.KindBusGetterUnavailable, "no fresh buses stored for stop %d", stopID)
	}
	if err != nil {
		return nil, transit.Wrap(transit.KindBusGetterUnavailable, err, "key-value lookup of buses of stop %d", stopID)
	}
	return buses, nil
}

// SaveBuses stores the bus list of a stop for the configured TTL.
func (s *Store) SaveBuses(ctx context.Context, stopID int, buses []*transit.Bus) error {
	data, err := json.Marshal(buses)
	if err != nil {
		return transit.Wrap(transit.KindBusSetterUnavailable, err, "encode buses of stop %d", stopID)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(busKey(stopID), data).WithTTL(s.busTTL))
	})
	if err != nil {
		return transit.Wrap(transit.KindBusSetterUnavailable, err, "key-value save of buses of stop %d", stopID)
	}
	return nil
}

// DeleteBuses removes the bus list of a stop.
func (s *Store) DeleteBuses(ctx context.Context, stopID int) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(busKey(stopID))
	})
	if err != nil {
		return transit.Wrap(transit.KindBusDeleterUnavailable, err, "key-value delete of buses of stop %d", stopID)
	}
	return nil
}
