package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type RedisStorageImpl struct {
	client *redis.Client
	prefix string
}

func CreateRedisStorage(client *redis.Client, prefix string) Storage {
	return &RedisStorageImpl{client: client, prefix: prefix}
}

func (r *RedisStorageImpl) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "RedisStorage.Get").Msg("")
		return nil, err
	}

	return value, nil
}

func (r *RedisStorageImpl) Set(ctx context.Context, key string, value []byte) error {
	err := r.client.Set(ctx, r.prefix+key, value, 0).Err()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "RedisStorage.Set").Msg("")
	}

	return err
}

func (r *RedisStorageImpl) Clear(ctx context.Context, key string) error {
	err := r.client.Del(ctx, r.prefix+key).Err()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "RedisStorage.Clear").Msg("")
	}

	return err
}
