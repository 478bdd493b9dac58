package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryCache implements an in-memory cache with TTL support. A janitor
// goroutine evicts expired items until Close is called.
type MemoryCache struct {
	data      sync.Map
	config    CacheConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
	now       func() time.Time
}

// cacheItem represents an item stored in the cache
type cacheItem struct {
	value      []byte
	expiration time.Time
}

func (i cacheItem) expired(now time.Time) bool {
	return !i.expiration.IsZero() && now.After(i.expiration)
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithConfig(DefaultCacheConfig())
}

// NewMemoryCacheWithConfig creates a new in-memory cache with custom configuration
func NewMemoryCacheWithConfig(config CacheConfig) *MemoryCache {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	mc := &MemoryCache{
		config: config,
		cancel: cancel,
		now:    time.Now,
	}

	mc.wg.Add(1)
	go mc.cleanupExpired(ctx)

	return mc
}

// Get retrieves a value from the cache
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullKey := m.config.Prefix + key

	value, ok := m.data.Load(fullKey)
	if !ok {
		return nil, ErrCacheMiss{Key: key}
	}

	item := value.(cacheItem)
	if item.expired(m.now()) {
		m.data.Delete(fullKey)
		return nil, ErrCacheMiss{Key: key}
	}

	return item.value, nil
}

// Set stores a value in the cache with a TTL. A zero ttl uses the default;
// a negative ttl stores the value without expiry.
func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if ttl == 0 {
		ttl = m.config.DefaultTTL
	}

	item := cacheItem{value: value}
	if ttl > 0 {
		item.expiration = m.now().Add(ttl)
	}

	m.data.Store(m.config.Prefix+key, item)
	return nil
}

// Delete removes a value from the cache
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.data.Delete(m.config.Prefix + key)
	return nil
}

// Clear removes all values from the cache
func (m *MemoryCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.data.Range(func(key, _ interface{}) bool {
		m.data.Delete(key)
		return true
	})
	return nil
}

// ClearSnapshot removes every page cached for snapshotID.
func (m *MemoryCache) ClearSnapshot(ctx context.Context, snapshotID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	prefix := m.config.Prefix + SnapshotKeyPrefix(snapshotID)
	m.data.Range(func(key, _ interface{}) bool {
		if k, ok := key.(string); ok && strings.HasPrefix(k, prefix) {
			m.data.Delete(key)
		}
		return true
	})
	return nil
}

// Exists checks if a key exists in the cache
func (m *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fullKey := m.config.Prefix + key

	value, ok := m.data.Load(fullKey)
	if !ok {
		return false, nil
	}

	if value.(cacheItem).expired(m.now()) {
		m.data.Delete(fullKey)
		return false, nil
	}

	return true, nil
}

// Len returns the number of stored items, expired or not.
func (m *MemoryCache) Len() int {
	n := 0
	m.data.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

// Close stops the janitor and waits for it to exit.
func (m *MemoryCache) Close() error {
	m.closeOnce.Do(func() {
		m.cancel()
		m.wg.Wait()
	})
	return nil
}

// cleanupExpired periodically removes expired items from the cache
func (m *MemoryCache) cleanupExpired(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.evictExpired()
		}
	}
}

func (m *MemoryCache) evictExpired() {
	now := m.now()
	m.data.Range(func(key, value interface{}) bool {
		if value.(cacheItem).expired(now) {
			m.data.Delete(key)
		}
		return true
	})
}
