package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces limiter keys in a shared redis.
const DefaultRedisPrefix = "classview:ratelimit:"

// slidingWindow keeps one sorted-set member per allowed request, scored by
// its time in milliseconds. Members are "<millis>-<uuid>" so the reset time
// can be read from the oldest member.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

local current = redis.call('ZCARD', key)
local allowed = 0
if current < limit then
	redis.call('ZADD', key, now, member)
	current = current + 1
	allowed = 1
end
redis.call('PEXPIRE', key, window)

local oldest = redis.call('ZRANGE', key, 0, 0)
local reset = now
if oldest[1] then
	reset = tonumber(string.match(oldest[1], '^(%d+)')) + window
end

return {allowed, current, reset}
`)

// RedisLimiter is a sliding-window limiter shared by every server that uses
// the same redis.
type RedisLimiter struct {
	client *redis.Client
	owned  bool
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// RedisConfig holds configuration for the redis limiter.
type RedisConfig struct {
	// Client is used when set; otherwise one is opened from Addr
	Client   *redis.Client
	Addr     string
	Password string
	DB       int

	Limit  int
	Window time.Duration
	// Prefix defaults to DefaultRedisPrefix
	Prefix string
	// Now replaces time.Now, for tests
	Now func() time.Time
}

// NewRedisLimiterWithConfig creates a redis limiter. A client it opens
// itself is closed by Close.
func NewRedisLimiterWithConfig(config RedisConfig) (*RedisLimiter, error) {
	if config.Client == nil && config.Addr == "" {
		return nil, errors.New("redis client or address is required")
	}
	if config.Limit <= 0 {
		return nil, errors.New("limit must be greater than 0")
	}
	if config.Window < time.Millisecond {
		return nil, errors.New("window must be at least 1ms")
	}

	r := &RedisLimiter{
		client: config.Client,
		limit:  config.Limit,
		window: config.Window,
		prefix: config.Prefix,
		now:    config.Now,
	}
	if r.client == nil {
		r.client = redis.NewClient(&redis.Options{
			Addr:     config.Addr,
			Password: config.Password,
			DB:       config.DB,
		})
		r.owned = true
	}
	if r.prefix == "" {
		r.prefix = DefaultRedisPrefix
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r, nil
}

// Allow implements Limiter
func (r *RedisLimiter) Allow(ctx context.Context, key string) (*Info, error) {
	now := r.now()

	result, err := slidingWindow.Run(ctx, r.client, []string{r.prefix + key},
		now.UnixMilli(),
		r.window.Milliseconds(),
		r.limit,
		strconv.FormatInt(now.UnixMilli(), 10)+"-"+uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("redis rate limit check failed: %w", err)
	}
	if len(result) != 3 {
		return nil, fmt.Errorf("unexpected redis script result: %v", result)
	}

	info := &Info{
		Limit:     r.limit,
		Remaining: max(r.limit-int(result[1]), 0),
		Allowed:   result[0] == 1,
		ResetAt:   time.UnixMilli(result[2]),
	}
	return info, nil
}

// Reset forgets every request recorded for key.
func (r *RedisLimiter) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

// Count returns the number of requests for key in the current window.
func (r *RedisLimiter) Count(ctx context.Context, key string) (int, error) {
	redisKey := r.prefix + key
	windowStart := r.now().Add(-r.window).UnixMilli()

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", strconv.FormatInt(windowStart, 10))
	card := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}
	return int(card.Val()), nil
}

// Close closes the redis client when the limiter opened it.
func (r *RedisLimiter) Close() error {
	if r.owned {
		return r.client.Close()
	}
	return nil
}
