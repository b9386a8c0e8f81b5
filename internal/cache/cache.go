// file: internal/cache/cache.go
// version: 2.0.0
// guid: a1b2c3d4-e5f6-7a8b-9c0d-1e2f3a4b5c6d

package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hoangdinhthien/swimadmin/internal/metrics"
)

const (
	// DefaultTTL applies to Set and Fetch when no TTL is given.
	DefaultTTL = 5 * time.Minute
	// DefaultCleanupInterval is how often the background sweep runs.
	DefaultCleanupInterval = time.Minute
)

type entry[T any] struct {
	data     T
	storedAt time.Time
	ttl      time.Duration
}

// An entry is fresh while now - storedAt <= ttl. A TTL <= 0 marks the entry
// stale immediately, so every Get is a miss.
func (e entry[T]) expired(now time.Time) bool {
	return e.ttl <= 0 || now.Sub(e.storedAt) > e.ttl
}

// Cache is a generic TTL cache safe for concurrent use. Expired entries are
// removed lazily by the Get that observes them and in bulk by Cleanup.
// Instances are composed and passed by reference; there is no package-level
// singleton. The cache does not clone values, so callers must treat shared
// payloads as immutable.
type Cache[T any] struct {
	mu         sync.Mutex
	items      map[string]entry[T]
	defaultTTL time.Duration
	now        func() time.Time
}

// Option configures a Cache.
type Option[T any] func(*Cache[T])

// WithClock swaps the time source, letting tests control expiry.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Cache[T]) { c.now = now }
}

// New creates a cache with the given default TTL.
func New[T any](defaultTTL time.Duration, opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		items:      make(map[string]entry[T]),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves a value if it exists and hasn't expired. An expired entry is
// deleted as a side effect and reported as a miss.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		metrics.IncCacheMiss()
		var zero T
		return zero, false
	}
	if e.expired(c.now()) {
		delete(c.items, key)
		metrics.IncCacheEviction()
		metrics.IncCacheMiss()
		var zero T
		return zero, false
	}
	metrics.IncCacheHit()
	return e.data, true
}

// Set stores a value with the default TTL.
func (c *Cache[T]) Set(key string, value T) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores a value with a specific TTL, stamping the current time.
func (c *Cache[T]) SetWithTTL(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	c.items[key] = entry[T]{data: value, storedAt: c.now(), ttl: ttl}
	c.mu.Unlock()
}

// Delete removes a single key. No-op when absent.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Clear removes all entries.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	c.items = make(map[string]entry[T])
	c.mu.Unlock()
}

// Cleanup sweeps the whole store and removes expired entries. It bounds
// growth from keys that are written once and never read again.
func (c *Cache[T]) Cleanup() {
	now := c.now()
	c.mu.Lock()
	for key, e := range c.items {
		if e.expired(now) {
			delete(c.items, key)
			metrics.IncCacheEviction()
		}
	}
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired or not.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// StartCleanup runs Cleanup on a fixed interval until the returned stop
// function is called. Stop is safe to call more than once.
func (c *Cache[T]) StartCleanup(interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Cleanup()
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// Fetch is the cache-aside decorator: on hit it returns the cached value
// without invoking fn; on miss it invokes fn, stores a successful result
// with the default TTL, and returns it. Errors propagate and are never
// cached.
func (c *Cache[T]) Fetch(key string, fn func() (T, error)) (T, error) {
	return c.FetchTTL(key, c.defaultTTL, fn)
}

// FetchTTL is Fetch with an explicit TTL for the stored result.
func (c *Cache[T]) FetchTTL(key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := fn()
	if err != nil {
		var zero T
		return zero, err
	}
	c.SetWithTTL(key, v, ttl)
	return v, nil
}

// FetchAs is the typed decorator over a shared Cache[any]. A stored value of
// the wrong dynamic type counts as a miss and is overwritten on success.
func FetchAs[T any](c *Cache[any], key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	typed, err := fn()
	if err != nil {
		var zero T
		return zero, err
	}
	c.SetWithTTL(key, typed, ttl)
	return typed, nil
}

// Key builds a deterministic colon-joined cache key from mixed parts, e.g.
// Key("courses", tenant, page, limit). Callers own key uniqueness; nothing
// namespaces keys beyond convention.
func Key(parts ...any) string {
	segs := make([]string, len(parts))
	for i, p := range parts {
		segs[i] = fmt.Sprint(p)
	}
	return strings.Join(segs, ":")
}
