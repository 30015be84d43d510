package repositories

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-login-console/internal/logger"
)

const redisKeyPrefix = "storage:"

// RedisStore keeps values in Redis under the "storage:" namespace, without expiry.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a store backed by the given client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	val, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		logger.Log.Debugw("redis key not found", "key", key)
		return "", false, nil
	}
	if err != nil {
		logger.Log.Errorw("redis get failed", "key", key, "error", err)
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	err := r.client.Set(ctx, redisKeyPrefix+key, value, 0).Err()
	if err != nil {
		logger.Log.Errorw("redis set failed", "key", key, "error", err)
	}
	return err
}

func (r *RedisStore) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	err := r.client.Del(ctx, redisKeyPrefix+key).Err()
	if err != nil {
		logger.Log.Errorw("redis del failed", "key", key, "error", err)
	}
	return err
}
