package dataset

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cacheOpTimeout = 500 * time.Millisecond

// SnapshotCache is a byte-level cache for the serialized processed table.
// Misses and backend failures are indistinguishable on purpose: the loader
// always has the file and compute paths behind it.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
}

// RedisCache backs SnapshotCache with Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects a cache to the given address.
func NewRedisCache(addr string, db int) *RedisCache {
	return &RedisCache{client: redis.NewClient(&redis.Options{Addr: addr, DB: db})}
}

// NewRedisCacheWithClient wraps an existing client (tests use redismock).
func NewRedisCacheWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get fetches a cached table; any error reads as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("snapshot cache read failed")
		}
		return nil, false
	}
	return b, true
}

// Set stores a serialized table; failures are logged, never fatal.
func (c *RedisCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	if err := c.client.Set(ctx, key, val, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("snapshot cache write failed")
	}
}
