package app

import (
	"context"
	"fmt"

	"github.com/alimikegami/perfume-store/config"
	"github.com/alimikegami/perfume-store/internal/infrastructure/cache/redis"
	"github.com/alimikegami/perfume-store/internal/infrastructure/database/mongodb"
	"github.com/alimikegami/perfume-store/internal/infrastructure/database/postgres"
	"github.com/alimikegami/perfume-store/internal/repository"
)

const (
	StorageDriverMemory   = "memory"
	StorageDriverRedis    = "redis"
	StorageDriverPostgres = "postgres"
	StorageDriverMongoDB  = "mongodb"
)

// CreateStorage opens the persistence port selected by CART_STORAGE_DRIVER.
// The returned func releases the underlying connection.
func CreateStorage(ctx context.Context, cfg *config.Config) (repository.Storage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageConfig.Driver {
	case "", StorageDriverMemory:
		return repository.CreateMemoryStorage(), noop, nil

	case StorageDriverRedis:
		client, err := redis.NewClient(ctx, cfg.StorageConfig.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return repository.CreateRedisStorage(client, "storefront:"), client.Close, nil

	case StorageDriverPostgres:
		db, err := postgres.GetDBInstance(cfg.PostgreSQLConfig)
		if err != nil {
			return nil, noop, err
		}
		storage, err := repository.CreatePostgresStorage(ctx, db)
		if err != nil {
			return nil, noop, err
		}
		return storage, db.Close, nil

	case StorageDriverMongoDB:
		database, err := mongodb.ConnectToMongoDB(ctx, cfg.MongoDBConfig.URI, cfg.MongoDBConfig.Database)
		if err != nil {
			return nil, noop, err
		}
		return repository.CreateMongoDBStorage(database), func() error {
			return database.Client().Disconnect(context.Background())
		}, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.StorageConfig.Driver)
	}
}
