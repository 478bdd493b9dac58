package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

// DefaultCleanupInterval is how often idle buckets are dropped.
const DefaultCleanupInterval = 5 * time.Minute

// TokenBucket is an in-memory token bucket per key. A bucket holds up to
// Capacity tokens and refills continuously at Capacity tokens per Window.
type TokenBucket struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity int
	window   time.Duration
	now      func() time.Time

	cleanup   *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// TokenBucketConfig holds configuration for the token bucket rate limiter
type TokenBucketConfig struct {
	// Capacity is the maximum number of tokens in the bucket
	Capacity int
	// Window is how long an empty bucket takes to refill completely
	Window time.Duration
	// CleanupInterval is how often idle buckets are dropped; zero disables
	// the cleanup goroutine
	CleanupInterval time.Duration
	// Now replaces time.Now, for tests
	Now func() time.Time
}

// NewTokenBucketWithConfig creates a token bucket limiter.
func NewTokenBucketWithConfig(config TokenBucketConfig) *TokenBucket {
	tb := &TokenBucket{
		buckets:  make(map[string]*bucket),
		capacity: config.Capacity,
		window:   config.Window,
		now:      config.Now,
		done:     make(chan struct{}),
	}
	if tb.now == nil {
		tb.now = time.Now
	}

	if config.CleanupInterval > 0 {
		tb.cleanup = time.NewTicker(config.CleanupInterval)
		go tb.cleanupLoop()
	}

	return tb
}

// Allow implements Limiter
func (tb *TokenBucket) Allow(ctx context.Context, key string) (*Info, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(tb.capacity), lastRefill: now}
		tb.buckets[key] = b
	}

	if elapsed := now.Sub(b.lastRefill); elapsed > 0 {
		refill := float64(tb.capacity) * elapsed.Seconds() / tb.window.Seconds()
		b.tokens = math.Min(float64(tb.capacity), b.tokens+refill)
		b.lastRefill = now
	}

	info := &Info{Limit: tb.capacity}
	if b.tokens >= 1 {
		b.tokens--
		info.Allowed = true
	}
	info.Remaining = int(b.tokens)
	info.ResetAt = now.Add(tb.untilToken(b.tokens))
	return info, nil
}

// untilToken is how long a bucket holding tokens needs to reach one token.
func (tb *TokenBucket) untilToken(tokens float64) time.Duration {
	if tokens >= 1 {
		return 0
	}
	perToken := float64(tb.window) / float64(tb.capacity)
	return time.Duration(math.Ceil((1 - tokens) * perToken))
}

// Len returns the number of tracked keys.
func (tb *TokenBucket) Len() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.buckets)
}

func (tb *TokenBucket) cleanupLoop() {
	for {
		select {
		case <-tb.cleanup.C:
			tb.evictIdle()
		case <-tb.done:
			return
		}
	}
}

// evictIdle drops buckets that have been full for a whole window; a new
// bucket for the same key starts full anyway.
func (tb *TokenBucket) evictIdle() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	for key, b := range tb.buckets {
		if now.Sub(b.lastRefill) > tb.window {
			delete(tb.buckets, key)
		}
	}
}

// Close stops the cleanup goroutine. Calling Close more than once is safe.
func (tb *TokenBucket) Close() error {
	tb.closeOnce.Do(func() {
		close(tb.done)
		if tb.cleanup != nil {
			tb.cleanup.Stop()
		}
	})
	return nil
}
