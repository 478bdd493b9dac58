package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// newTestMemoryCache returns a cache whose clock the test controls.
func newTestMemoryCache(t *testing.T, config CacheConfig) (*MemoryCache, *time.Time) {
	t.Helper()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCacheWithConfig(config)
	c.now = func() time.Time { return now }
	t.Cleanup(func() { c.Close() })
	return c, &now
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache, _ := newTestMemoryCache(t, DefaultCacheConfig())
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "test-key", []byte("test-value"), time.Minute))

	retrieved, err := cache.Get(ctx, "test-key")
	require.NoError(t, err)
	assert.Equal(t, []byte("test-value"), retrieved)
}

func TestMemoryCache_GetMiss(t *testing.T) {
	cache, _ := newTestMemoryCache(t, DefaultCacheConfig())

	_, err := cache.Get(context.Background(), "nonexistent")
	assert.True(t, IsCacheMiss(err))
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	cache, _ := newTestMemoryCache(t, DefaultCacheConfig())
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Set(ctx, k, []byte(k), 0))
	}
	assert.Equal(t, 3, cache.Len())

	require.NoError(t, cache.Delete(ctx, "a"))
	_, err := cache.Get(ctx, "a")
	assert.True(t, IsCacheMiss(err))

	require.NoError(t, cache.Clear(ctx))
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_ClearSnapshot(t *testing.T) {
	cache, _ := newTestMemoryCache(t, DefaultCacheConfig())
	ctx := context.Background()

	oldPage := QueryKey("snap-old", []string{"actor"}, 1, 10)
	newPage := QueryKey("snap-new", []string{"actor"}, 1, 10)
	require.NoError(t, cache.Set(ctx, oldPage, []byte("old"), 0))
	require.NoError(t, cache.Set(ctx, QueryKey("snap-old", nil, 2, 10), []byte("old"), 0))
	require.NoError(t, cache.Set(ctx, newPage, []byte("new"), 0))
	require.NoError(t, cache.Set(ctx, "unrelated", []byte("x"), 0))

	require.NoError(t, cache.ClearSnapshot(ctx, "snap-old"))

	assert.Equal(t, 2, cache.Len())
	_, err := cache.Get(ctx, oldPage)
	assert.True(t, IsCacheMiss(err))

	got, err := cache.Get(ctx, newPage)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	ok, err := cache.Exists(ctx, "unrelated")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryCache_Exists(t *testing.T) {
	cache, _ := newTestMemoryCache(t, DefaultCacheConfig())
	ctx := context.Background()

	ok, err := cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 0))
	ok, err = cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryCache_TTLExpiration(t *testing.T) {
	cache, now := newTestMemoryCache(t, DefaultCacheConfig())
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short", []byte("v"), time.Second))
	require.NoError(t, cache.Set(ctx, "default", []byte("v"), 0))
	require.NoError(t, cache.Set(ctx, "forever", []byte("v"), -1))

	*now = now.Add(2 * time.Second)
	_, err := cache.Get(ctx, "short")
	assert.True(t, IsCacheMiss(err))
	ok, _ := cache.Exists(ctx, "default")
	assert.True(t, ok)

	*now = now.Add(10 * time.Minute)
	ok, _ = cache.Exists(ctx, "default")
	assert.False(t, ok)

	*now = now.Add(1000 * time.Hour)
	_, err = cache.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestMemoryCache_EvictExpired(t *testing.T) {
	cache, now := newTestMemoryCache(t, DefaultCacheConfig())
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", []byte("v"), time.Second))
	require.NoError(t, cache.Set(ctx, "b", []byte("v"), time.Hour))

	*now = now.Add(time.Minute)
	cache.evictExpired()
	assert.Equal(t, 1, cache.Len())
}

func TestMemoryCache_JanitorEvicts(t *testing.T) {
	config := DefaultCacheConfig()
	config.CleanupInterval = 10 * time.Millisecond
	cache := NewMemoryCacheWithConfig(config)
	defer cache.Close()

	require.NoError(t, cache.Set(context.Background(), "a", []byte("v"), time.Millisecond))
	assert.Eventually(t, func() bool { return cache.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemoryCache_Prefix(t *testing.T) {
	config := DefaultCacheConfig()
	config.Prefix = "one:"
	one, _ := newTestMemoryCache(t, config)

	require.NoError(t, one.Set(context.Background(), "k", []byte("v"), 0))
	_, ok := one.data.Load("one:k")
	assert.True(t, ok)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache, _ := newTestMemoryCache(t, DefaultCacheConfig())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%5)
			for j := 0; j < 100; j++ {
				_ = cache.Set(ctx, key, []byte("v"), 0)
				_, _ = cache.Get(ctx, key)
				_, _ = cache.Exists(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, cache.Len())
}

func TestMemoryCache_CloseStopsJanitor(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cache := NewMemoryCache()
	require.NoError(t, cache.Close())
	require.NoError(t, cache.Close())
}

func TestMemoryCache_ContextCancellation(t *testing.T) {
	cache, _ := newTestMemoryCache(t, DefaultCacheConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, cache.Set(ctx, "k", nil, 0), context.Canceled)
	assert.ErrorIs(t, cache.Delete(ctx, "k"), context.Canceled)
	assert.ErrorIs(t, cache.Clear(ctx), context.Canceled)
	_, err = cache.Exists(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
