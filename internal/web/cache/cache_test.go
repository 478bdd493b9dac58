package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCacheConfig(t *testing.T) {
	config := DefaultCacheConfig()
	assert.Equal(t, 5*time.Minute, config.DefaultTTL)
	assert.Equal(t, "classview:", config.Prefix)
	assert.Equal(t, time.Minute, config.CleanupInterval)
}

func TestErrCacheMiss(t *testing.T) {
	err := ErrCacheMiss{Key: "test"}
	assert.Equal(t, "cache miss: test", err.Error())
	assert.True(t, IsCacheMiss(err))
}

func TestIsCacheMiss(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "cache miss error",
			err:      ErrCacheMiss{Key: "test"},
			expected: true,
		},
		{
			name:     "wrapped cache miss",
			err:      fmt.Errorf("lookup: %w", ErrCacheMiss{Key: "test"}),
			expected: true,
		},
		{
			name:     "other error",
			err:      assert.AnError,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsCacheMiss(tt.err))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("memory by default", func(t *testing.T) {
		c, err := New(Config{})
		require.NoError(t, err)
		defer c.Close()
		assert.IsType(t, &MemoryCache{}, c)
	})

	t.Run("memory ttl", func(t *testing.T) {
		c, err := New(Config{Backend: "MEMORY", TTL: time.Hour})
		require.NoError(t, err)
		defer c.Close()
		assert.Equal(t, time.Hour, c.(*MemoryCache).config.DefaultTTL)
	})

	t.Run("none", func(t *testing.T) {
		c, err := New(Config{Backend: BackendNone})
		require.NoError(t, err)
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
		_, err = c.Get(ctx, "k")
		assert.True(t, IsCacheMiss(err))
		ok, err := c.Exists(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c, err := New(Config{Backend: BackendRedis, Redis: RedisConfig{Addr: mr.Addr()}})
		require.NoError(t, err)
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
		assert.True(t, mr.Exists("classview:k"))
	})

	t.Run("redis unreachable", func(t *testing.T) {
		_, err := New(Config{Backend: BackendRedis, Redis: RedisConfig{Addr: "localhost:99999"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to redis")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New(Config{Backend: "memcached"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "memcached")
	})
}
