// Package ratelimit limits how many API requests one client may make in a
// window, either in process or shared through redis.
package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Backends lists every valid backend name.
var Backends = []string{BackendMemory, BackendRedis}

// Limiter decides whether a request for key may proceed.
type Limiter interface {
	// Allow consumes one request for key. Info is never nil when err is nil.
	Allow(ctx context.Context, key string) (*Info, error)

	// Close releases the limiter's background work and connections.
	Close() error
}

// Info is the limiter state after one Allow call.
type Info struct {
	// Limit is the number of requests allowed per window
	Limit int
	// Remaining is the number of requests left in the current window
	Remaining int
	// ResetAt is when a denied client may try again
	ResetAt time.Time
	// Allowed reports whether the request may proceed
	Allowed bool
}

// Config selects and sizes a limiter.
type Config struct {
	Backend string
	Limit   int
	Window  time.Duration
	Redis   RedisConfig
}

// New builds the limiter named by cfg.Backend. An empty backend means memory.
func New(cfg Config) (Limiter, error) {
	if cfg.Limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0, got %d", cfg.Limit)
	}
	if cfg.Window <= 0 {
		return nil, fmt.Errorf("window must be greater than 0, got %s", cfg.Window)
	}

	switch strings.ToLower(cfg.Backend) {
	case "", BackendMemory:
		return NewTokenBucketWithConfig(TokenBucketConfig{
			Capacity:        cfg.Limit,
			Window:          cfg.Window,
			CleanupInterval: DefaultCleanupInterval,
		}), nil
	case BackendRedis:
		rc := cfg.Redis
		rc.Limit = cfg.Limit
		rc.Window = cfg.Window
		return NewRedisLimiterWithConfig(rc)
	default:
		return nil, fmt.Errorf("unknown rate limit backend %q (expected one of %s)", cfg.Backend, strings.Join(Backends, ", "))
	}
}
