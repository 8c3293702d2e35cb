// Package store adapts the six key-value operations the pipeline needs
// onto a concrete Redis client, and provides the key schema used to
// address match/team/player/history records.
package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by HGet when the field does not exist.
var ErrNotFound = errors.New("store: field not found")

// Store is the narrow set of key-value operations the processors and read
// path depend on. It is satisfied by *RedisClient and by test fakes.
type Store interface {
	HSet(ctx context.Context, key string, values map[string]any) error
	HGet(ctx context.Context, key, field string) (string, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)
	ZAdd(ctx context.Context, key, member string, score float64) error
	ZRange(ctx context.Context, key string) ([]string, error)
}

// RedisClient adapts *redis.Client to the Store interface.
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient builds a RedisClient from a redis:// connection URL.
func NewRedisClient(url string) (*RedisClient, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisClient{rdb: redis.NewClient(opts)}, nil
}

// Raw exposes the underlying *redis.Client for health checks and Close.
func (c *RedisClient) Raw() *redis.Client { return c.rdb }

func (c *RedisClient) HSet(ctx context.Context, key string, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return c.rdb.HSet(ctx, key, values).Err()
}

func (c *RedisClient) HGet(ctx context.Context, key, field string) (string, error) {
	val, err := c.rdb.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return val, err
}

func (c *RedisClient) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return c.rdb.HGetAll(ctx, key).Result()
}

func (c *RedisClient) HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	return c.rdb.HIncrBy(ctx, key, field, delta).Result()
}

func (c *RedisClient) ZAdd(ctx context.Context, key, member string, score float64) error {
	return c.rdb.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err()
}

func (c *RedisClient) ZRange(ctx context.Context, key string) ([]string, error) {
	return c.rdb.ZRange(ctx, key, 0, -1).Result()
}
