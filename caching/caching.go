// Package caching is an in-memory read-through cache for values the process
// derives from its own immutable inputs. Database rows do not belong here:
// other processes may change them.
package caching

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	defaultExpiration = 10 * time.Minute
	cleanupInterval   = 10 * time.Minute
)

type Cache struct {
	memoryCache *cache.Cache
}

func NewCache() *Cache {
	return &Cache{memoryCache: cache.New(defaultExpiration, cleanupInterval)}
}

// GetOrLoad returns the cached value of key, calling load and caching its
// result on a miss. Errors are not cached.
func GetOrLoad[T any](c *Cache, key string, load func() (T, error)) (T, error) {
	if c == nil {
		return load()
	}
	if v, ok := c.memoryCache.Get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}
	t, err := load()
	if err != nil {
		return t, err
	}
	c.memoryCache.SetDefault(key, t)
	return t, nil
}

func (c *Cache) ItemCount() int {
	if c == nil {
		return 0
	}
	return c.memoryCache.ItemCount()
}
