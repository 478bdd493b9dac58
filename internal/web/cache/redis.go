package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanBatch is the SCAN count hint and the number of keys unlinked per
// round trip when clearing pages.
const scanBatch = 256

// RedisCache keeps rendered query pages in Redis so that they survive a
// restart and can be shared by servers that build the same snapshot.
// Every key lives under CacheConfig.Prefix; Clear and ClearSnapshot only
// remove query pages and leave other keys under the prefix alone.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisConfig locates the Redis server.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	CacheConfig CacheConfig
}

// DefaultRedisConfig points at a local Redis with the default cache settings.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:        "localhost:6379",
		CacheConfig: DefaultCacheConfig(),
	}
}

// NewRedisCacheWithConfig connects to Redis and pings it, so a wrong address
// fails at startup instead of on the first query.
func NewRedisCacheWithConfig(config RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return NewRedisCacheWithClient(client, config.CacheConfig), nil
}

// NewRedisCacheWithClient wraps an existing client. Close closes it.
func NewRedisCacheWithClient(client *redis.Client, config CacheConfig) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: config.Prefix,
		ttl:    config.DefaultTTL,
	}
}

func (r *RedisCache) key(k string) string { return r.prefix + k }

// Get returns a cached page, or ErrCacheMiss.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	page, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss{Key: key}
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return page, nil
}

// Set stores a page. A zero ttl uses the configured default.
func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = r.ttl
	}
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes one page.
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Exists reports whether a page is cached.
func (r *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Clear removes every cached query page.
func (r *RedisCache) Clear(ctx context.Context) error {
	return r.unlinkMatching(ctx, r.key(QueryKeyPrefix)+"*")
}

// ClearSnapshot removes the pages cached for one snapshot.
func (r *RedisCache) ClearSnapshot(ctx context.Context, snapshotID string) error {
	return r.unlinkMatching(ctx, r.key(SnapshotKeyPrefix(snapshotID))+"*")
}

// unlinkMatching scans for pattern and unlinks the keys in batches. UNLINK
// frees the values off the main Redis thread.
func (r *RedisCache) unlinkMatching(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := r.client.Unlink(ctx, batch...).Err()
		batch = batch[:0]
		return err
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := flush(); err != nil {
				return fmt.Errorf("failed to clear %s: %w", pattern, err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan %s: %w", pattern, err)
	}
	if err := flush(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", pattern, err)
	}
	return nil
}

// Close closes the Redis connection
func (r *RedisCache) Close() error {
	return r.client.Close()
}
