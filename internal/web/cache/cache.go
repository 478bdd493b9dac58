// Package cache stores rendered query responses in memory or in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Cache defines the interface for all cache backends
type Cache interface {
	// Get retrieves a value from the cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with a TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from the cache
	Clear(ctx context.Context) error

	// ClearSnapshot removes the cached query pages of one snapshot
	ClearSnapshot(ctx context.Context, snapshotID string) error

	// Exists checks if a key exists in the cache
	Exists(ctx context.Context, key string) (bool, error)

	// Close releases the backend's resources
	Close() error
}

// CacheConfig holds common configuration for cache backends
type CacheConfig struct {
	// DefaultTTL is the default time-to-live for cached items
	DefaultTTL time.Duration
	// Prefix is prepended to all cache keys
	Prefix string
	// CleanupInterval is how often the memory backend evicts expired items
	CleanupInterval time.Duration
}

// DefaultCacheConfig returns a default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		DefaultTTL:      5 * time.Minute,
		Prefix:          "classview:",
		CleanupInterval: time.Minute,
	}
}

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Backends lists every backend New accepts.
var Backends = []string{BackendMemory, BackendRedis, BackendNone}

// Config selects and configures a backend.
type Config struct {
	Backend string
	TTL     time.Duration
	Redis   RedisConfig
}

// New builds the backend named by cfg.Backend. An empty backend means memory.
func New(cfg Config) (Cache, error) {
	common := DefaultCacheConfig()
	if cfg.TTL > 0 {
		common.DefaultTTL = cfg.TTL
	}

	switch strings.ToLower(cfg.Backend) {
	case "", BackendMemory:
		return NewMemoryCacheWithConfig(common), nil
	case BackendRedis:
		rc := cfg.Redis
		rc.CacheConfig = common
		c, err := NewRedisCacheWithConfig(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", rc.Addr, err)
		}
		return c, nil
	case BackendNone:
		return NoopCache{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (expected one of %s)", cfg.Backend, strings.Join(Backends, ", "))
	}
}

// ErrCacheMiss is returned when a key is not found in the cache
type ErrCacheMiss struct {
	Key string
}

func (e ErrCacheMiss) Error() string {
	return "cache miss: " + e.Key
}

// IsCacheMiss checks if an error is a cache miss
func IsCacheMiss(err error) bool {
	var miss ErrCacheMiss
	return errors.As(err, &miss)
}

// NoopCache never stores anything. Every Get is a miss.
type NoopCache struct{}

func (NoopCache) Get(_ context.Context, key string) ([]byte, error) {
	return nil, ErrCacheMiss{Key: key}
}

func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NoopCache) Delete(context.Context, string) error                     { return nil }
func (NoopCache) Clear(context.Context) error                              { return nil }
func (NoopCache) ClearSnapshot(context.Context, string) error              { return nil }
func (NoopCache) Exists(context.Context, string) (bool, error)             { return false, nil }
func (NoopCache) Close() error                                             { return nil }
