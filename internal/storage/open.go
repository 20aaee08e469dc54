package storage

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"cert-system/internal/repositories"
	"cert-system/pkg/config"
	"cert-system/pkg/database/postgresql"
)

// Backend: открытые хранилище документов и кэш настроек.
type Backend struct {
	Store *repositories.Store
	Cache repositories.CacheRepositoryInterface
	close []func()
}

func (b *Backend) Close() {
	for i := len(b.close) - 1; i >= 0; i-- {
		b.close[i]()
	}
}

// Open подключает хранилище по STORAGE_DRIVER.
// memory держит всё в процессе и годится для разработки и тестов.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		logger.Warn("Используется хранилище в памяти: данные не сохраняются между запусками")
		return &Backend{
			Store: repositories.NewMemoryStore(),
			Cache: repositories.NewMemoryCacheRepository(),
		}, nil

	case config.StorageDriverPostgres:
		b := &Backend{}

		pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
		if err != nil {
			return nil, err
		}
		b.close = append(b.close, pool.Close)

		if cfg.Postgres.RunMigrations {
			if err := postgresql.Migrate(pool); err != nil {
				b.Close()
				return nil, fmt.Errorf("ошибка миграций: %w", err)
			}
			logger.Info("Миграции применены")
		}

		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			_ = redisClient.Close()
			b.Close()
			return nil, fmt.Errorf("не удалось подключиться к Redis %s: %w", cfg.Redis.Address, err)
		}
		b.close = append(b.close, func() { _ = redisClient.Close() })

		b.Store = repositories.NewPostgresStore(pool, logger)
		b.Cache = repositories.NewRedisCacheRepository(redisClient)
		return b, nil
	}
	return nil, fmt.Errorf("неизвестный STORAGE_DRIVER %q", cfg.Storage.Driver)
}
