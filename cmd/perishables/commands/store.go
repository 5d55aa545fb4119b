package commands

import (
	"context"
	"fmt"
	"log"

	"perishables/internal/cache"
	"perishables/internal/config"
	"perishables/internal/repository/mysql"
	"perishables/internal/repository/sqlite"
	"perishables/internal/repository/sqlstore"
	"perishables/internal/service"
)

// openStore opens the configured database and provisions its schema
func openStore(ctx context.Context) (*sqlstore.Store, error) {
	opts := []sqlstore.Option{sqlstore.WithTimeout(cfg.StoreTimeout())}

	var (
		store *sqlstore.Store
		err   error
	)
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		store, err = mysql.Open(cfg.Database.DSN, opts...)
	case config.DriverSQLite:
		store, err = sqlite.Open(cfg.Database.Path, opts...)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Initialize(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("initialize %s store: %w", cfg.Database.Driver, err)
	}
	return store, nil
}

// openStatsCache returns the Redis cache when one is configured and
// reachable, otherwise an in-process cache
func openStatsCache(ctx context.Context) cache.StatsCache {
	if cfg.Cache.RedisAddr == "" {
		return cache.NewMemory(cfg.CacheTTL())
	}
	rc, err := cache.DialRedis(ctx, cfg.Cache.RedisAddr, cfg.CacheTTL())
	if err != nil {
		log.Printf("Redis stats cache unavailable, using in-process cache: %v", err)
		return cache.NewMemory(cfg.CacheTTL())
	}
	if cfg.Cache.Key != "" {
		rc = rc.WithKey(cfg.Cache.Key)
	}
	log.Printf("Stats cache: redis %s", cfg.Cache.RedisAddr)
	return rc
}

// openService opens the store and wraps it in a service. The returned
// close function releases the store.
func openService(ctx context.Context, opts ...service.Option) (*service.InventoryService, func(), error) {
	store, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	opts = append([]service.Option{service.WithExpiringWindow(cfg.ExpiringWindow())}, opts...)
	svc := service.NewInventoryService(store, service.NewEventBus(), opts...)
	return svc, func() {
		if err := store.Close(); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
	}, nil
}
