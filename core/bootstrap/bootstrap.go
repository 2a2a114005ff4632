package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"transit-manager/core/cache"
	"transit-manager/core/config"
	"transit-manager/core/database"
	"transit-manager/core/gtfsrt"
	"transit-manager/core/reconcile"
	"transit-manager/core/resolver"
	"transit-manager/core/stopbucket"
	"transit-manager/core/stopdb"
	"transit-manager/core/stopkv"
	"transit-manager/core/stopmongo"
	"transit-manager/core/storage"
	"transit-manager/core/transitapi"

	"go.uber.org/zap"
)

const (
	SourceCache    = "cache"
	SourceKV       = "kv"
	SourceDatabase = "database"
	SourceBucket   = "bucket"
	SourceMongo    = "mongo"
	SourceAPI      = "api"
	SourceGTFSRT   = "gtfsrt"
)

// Store is a persistent stop store. Stores can be migrated from and to.
type Store interface {
	resolver.StopGetter
	resolver.StopSetter
	resolver.StopDeleter
	reconcile.Lister
}

type source struct {
	name string
	impl any
	kind resolver.SourceKind
}

// Backends holds the Resolver and every backend opened for it.
type Backends struct {
	Resolver *resolver.Resolver

	sources []source
	stores  map[string]Store
	closers []func() error
	logger  *zap.Logger
}

// Build opens every enabled backend in cfg and registers it on a new Resolver.
// On failure the backends opened so far are closed.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backends, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Backends{
		Resolver: resolver.New(cfg.Resolver, logger.Named("resolver")),
		stores:   make(map[string]Store),
		logger:   logger,
	}

	if err := b.open(ctx, cfg); err != nil {
		_ = b.Close()
		return nil, err
	}
	if err := b.register(); err != nil {
		_ = b.Close()
		return nil, err
	}

	logger.Info("Resolver ready",
		zap.Strings("sources", b.names()),
		zap.Int("online_getters", b.Resolver.CountStopGetters(resolver.ScopeOnline)),
		zap.Int("offline_getters", b.Resolver.CountStopGetters(resolver.ScopeOffline)),
	)
	return b, nil
}

func (b *Backends) open(ctx context.Context, cfg *config.Config) error {
	if cfg.Cache.Enabled {
		c := cache.NewStore(cfg.Cache, b.logger.Named(SourceCache))
		b.add(SourceCache, c, resolver.Offline)
		b.closers = append(b.closers, func() error { c.Close(); return nil })
	}

	if cfg.KV.Enabled {
		kv, err := stopkv.Open(cfg.KV, b.logger.Named(SourceKV))
		if err != nil {
			return fmt.Errorf("failed to open key-value store: %w", err)
		}
		b.closers = append(b.closers, kv.Close)
		b.add(SourceKV, kv, resolver.Offline)
		b.stores[SourceKV] = kv
	}

	if cfg.Database.Enabled {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		b.closers = append(b.closers, sqlDB.Close)

		store, err := stopdb.New(db, cfg.Database.AutoMigrate, b.logger.Named(SourceDatabase))
		if err != nil {
			return err
		}
		b.add(SourceDatabase, store, resolver.Offline)
		b.stores[SourceDatabase] = store
	}

	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return err
		}
		ensureCtx, cancel := context.WithTimeout(ctx, timeout(cfg.Storage.TimeoutSeconds))
		err = storage.EnsureBucket(ensureCtx, client, cfg.Storage.Bucket, cfg.Storage.Region)
		cancel()
		if err != nil {
			return err
		}
		store := stopbucket.New(client, cfg.Storage.Bucket, cfg.Storage.Prefix, b.logger.Named(SourceBucket))
		b.add(SourceBucket, store, resolver.Offline)
		b.stores[SourceBucket] = store
	}

	if cfg.Mongo.Enabled {
		client, err := stopmongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return err
		}
		b.closers = append(b.closers, func() error { return client.Disconnect(context.Background()) })

		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		store := stopmongo.New(coll, b.logger.Named(SourceMongo))
		b.add(SourceMongo, store, resolver.Offline)
		b.stores[SourceMongo] = store
	}

	if cfg.API.Enabled {
		b.add(SourceAPI, transitapi.New(cfg.API, b.logger.Named(SourceAPI)), resolver.Online)
	}

	if cfg.GTFSRT.Enabled {
		if cfg.GTFSRT.FeedURL == "" {
			return errors.New("gtfsrt.feed_url is required when the feed is enabled")
		}
		b.add(SourceGTFSRT, gtfsrt.New(cfg.GTFSRT, b.logger.Named(SourceGTFSRT)), resolver.Online)
	}
	return nil
}

func (b *Backends) add(name string, impl any, kind resolver.SourceKind) {
	b.sources = append(b.sources, source{name: name, impl: impl, kind: kind})
}

// writeOrder returns the sources with the cache moved to the end.
func (b *Backends) writeOrder() []source {
	ordered := make([]source, 0, len(b.sources))
	var last []source
	for _, s := range b.sources {
		if s.name == SourceCache {
			last = append(last, s)
			continue
		}
		ordered = append(ordered, s)
	}
	return append(ordered, last...)
}

func (b *Backends) register() error {
	r := b.Resolver
	var errs []error

	for _, s := range b.sources {
		if g, ok := s.impl.(resolver.StopGetter); ok {
			errs = append(errs, r.AddStopGetter(s.name, g, s.kind))
		}
		if g, ok := s.impl.(resolver.BusGetter); ok {
			errs = append(errs, r.AddBusGetter(s.name, g))
		}
	}
	for _, s := range b.writeOrder() {
		if v, ok := s.impl.(resolver.StopSetter); ok {
			errs = append(errs, r.AddStopSetter(s.name, v))
		}
		if v, ok := s.impl.(resolver.StopDeleter); ok {
			errs = append(errs, r.AddStopDeleter(s.name, v))
		}
		if v, ok := s.impl.(resolver.BusSetter); ok {
			errs = append(errs, r.AddBusSetter(s.name, v))
		}
		if v, ok := s.impl.(resolver.BusDeleter); ok {
			errs = append(errs, r.AddBusDeleter(s.name, v))
		}
	}
	return errors.Join(errs...)
}

func (b *Backends) names() []string {
	names := make([]string, len(b.sources))
	for i, s := range b.sources {
		names[i] = s.name
	}
	return names
}

// Store returns the persistent store registered under name.
func (b *Backends) Store(name string) (Store, error) {
	s, ok := b.stores[name]
	if !ok {
		return nil, fmt.Errorf("store %q is not enabled (available: %v)", name, b.StoreNames())
	}
	return s, nil
}

// StoreNames lists the enabled persistent stores.
func (b *Backends) StoreNames() []string {
	names := make([]string, 0, len(b.stores))
	for name := range b.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close releases every opened backend in reverse order.
func (b *Backends) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	b.closers = nil
	return errors.Join(errs...)
}

func timeout(seconds int) time.Duration {
	if seconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(seconds) * time.Second
}
