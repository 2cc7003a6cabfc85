package geocode

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache keeps addresses in Redis under prefix:coords.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	addr, err := c.client.Get(ctx, c.prefix+":"+key).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("Geocode cache read failed", slog.String("error", err.Error()))
		}
		return "", false
	}
	return addr, true
}

func (c *RedisCache) Set(ctx context.Context, key, address string) {
	if err := c.client.Set(ctx, c.prefix+":"+key, address, c.ttl).Err(); err != nil {
		slog.Warn("Geocode cache write failed", slog.String("error", err.Error()))
	}
}
