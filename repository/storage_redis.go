package repository

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/mailio/go-campaign-console/types"
	"github.com/redis/go-redis/v9"
)

const redisPrefix = "console"

// RedisStorage shares collections between machines. Keys are console:<namespace hash>:<key>.
type RedisStorage struct {
	client    *redis.Client
	namespace uint64
}

func NewRedisStorage(client *redis.Client, namespace string) *RedisStorage {
	return &RedisStorage{client: client, namespace: xxhash.Sum64String(namespace)}
}

func (r *RedisStorage) redisKey(key string) string {
	return fmt.Sprintf("%s:%x:%s", redisPrefix, r.namespace, key)
}

func (r *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.redisKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get key %s from redis: %w", key, err)
	}
	return data, nil
}

func (r *RedisStorage) Put(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, r.redisKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", key, err)
	}
	return nil
}

func (r *RedisStorage) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.redisKey(key)).Err()
}

func (r *RedisStorage) Name() string {
	return StorageRedis
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
