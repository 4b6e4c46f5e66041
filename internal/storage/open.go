package storage

import (
	"context"
	"fmt"
	"log/slog"

	"example.com/cleanslate/backend/internal/config"
	"example.com/cleanslate/backend/internal/database"
)

// Open выбирает драйвер слота по конфигурации и создает хранилище снимков.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*SnapshotStore, error) {
	var driver Driver

	switch cfg.Storage.Driver {
	case config.StorageDriverRedis:
		redisDriver, err := OpenRedis(ctx, cfg.Storage.RedisURL, cfg.Storage.Key)
		if err != nil {
			return nil, err
		}
		driver = redisDriver
	case config.StorageDriverPostgres:
		pool, err := database.Open(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		pgDriver, err := NewPostgresDriver(ctx, pool, cfg.Storage.Key)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("prepare snapshot table: %w", err)
		}
		driver = pgDriver
	case config.StorageDriverFile:
		fileDriver, err := NewFileDriver(cfg.Storage.FilePath)
		if err != nil {
			return nil, err
		}
		driver = fileDriver
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	store := New(driver, logger)
	store.SetTimeout(cfg.Storage.Timeout)
	return store, nil
}
