package main

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/config"
	"github.com/aliskhannn/lingvo-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/lingvo-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/lingvo-bot/internal/infra/redis"
	"github.com/aliskhannn/lingvo-bot/internal/infra/sqlite"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

// openKV builds the durable KV selected by the storage driver and returns
// a function releasing its resources.
func openKV(ctx context.Context, cfg *config.Config, lg *zap.Logger) (storage.KV, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		lg.Warn("favorites are kept in memory and lost on restart")
		return storage.NewMemoryKV(), noop, nil

	case config.DriverFile:
		kv, err := storage.NewFileKV(afero.NewOsFs(), cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return kv, noop, nil

	case config.DriverPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, err
		}

		repo := pgrepo.NewSlotRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil

	case config.DriverRedis:
		client, err := redis.NewClient(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redis.NewSlotStore(client), func() { _ = client.Close() }, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewSlotStore(db), func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.Storage.Driver)
	}
}
