package database

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the go-redis client used by the per-scope session,
// challenge and flag stores.
type RedisClient struct{ *redis.Client }

// NewRedis creates a client for the given address. The container pings it
// once at startup before any store is built on top.
func NewRedis(addr, pass string, db int) *RedisClient {
	return &RedisClient{redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

// Ping verifies connectivity.
func (c *RedisClient) Ping(ctx context.Context) error { return c.Client.Ping(ctx).Err() }
