// Package cache provides a typed, TTL-bounded in-memory cache.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/hammamikhairi/cookbook/internal/logger"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// Cache stores values of type V keyed by string. Safe for concurrent use.
type Cache[V any] struct {
	useCase string
	cache   *gocache.Cache
	log     *logger.Logger
}

// New creates a cache. A zero defaultExpiration means entries never
// expire; a zero cleanupInterval disables the background janitor.
func New[V any](useCase string, defaultExpiration, cleanupInterval time.Duration, log *logger.Logger) *Cache[V] {
	if defaultExpiration == 0 {
		defaultExpiration = gocache.NoExpiration
	}
	return &Cache[V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
		log:     log,
	}
}

// Get retrieves a value by key.
func (c *Cache[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V

	value, found := c.cache.Get(key)
	if !found {
		return zero, false
	}

	v, ok := value.(V)
	if !ok {
		c.log.Error("%s: wrong type for key %q: %T", c.useCase, key, value)
		return zero, false
	}

	c.log.Debug("%s: hit %q", c.useCase, key)
	return v, true
}

// Set stores value under key with the cache's default TTL.
func (c *Cache[V]) Set(ctx context.Context, key string, value V) {
	c.cache.SetDefault(key, value)
}

// Delete removes keys from the cache.
func (c *Cache[V]) Delete(ctx context.Context, keys ...string) {
	for _, key := range keys {
		c.cache.Delete(key)
	}
}

// Flush removes every entry.
func (c *Cache[V]) Flush(ctx context.Context) {
	c.cache.Flush()
}

// Len returns the number of entries, including expired ones not yet
// cleaned up.
func (c *Cache[V]) Len() int {
	return c.cache.ItemCount()
}
