package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKVRepository stores entries as plain Redis strings under a prefix.
// Redis expires entries itself, so DeleteExpired has nothing to do.
type RedisKVRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisKVRepository(client *redis.Client, prefix string) *RedisKVRepository {
	return &RedisKVRepository{client: client, prefix: prefix}
}

func (r *RedisKVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	return data, err
}

func (r *RedisKVRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

func (r *RedisKVRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

func (r *RedisKVRepository) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}
