package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Loader produces the value for a key on a cache miss
type Loader func(ctx context.Context) (value interface{}, err error)

// Cache is a process-local read-through cache with per-call ttl and prefix invalidation
//
//go:generate mockgen -package=cache -destination ./mock.go -source=cache.go
type Cache interface {
	Get(ctx context.Context, key string, ttl time.Duration, loader Loader) (value interface{}, err error)
	Invalidate(keyPrefix string)
	Len() int
}

// New returns an empty in-memory Cache; construct one per process and inject it, tests
// get a fresh instance each
func New() Cache {
	return &inMemoryCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

type cacheEntry struct {
	value    interface{}
	storedAt time.Time
}

type inMemoryCache struct {
	entries map[string]cacheEntry
	mutex   sync.RWMutex
	now     func() time.Time
}

func (c *inMemoryCache) Get(ctx context.Context, key string, ttl time.Duration, loader Loader) (value interface{}, err error) {

	c.mutex.RLock()
	entry, ok := c.entries[key]
	c.mutex.RUnlock()

	if ok && c.now().Sub(entry.storedAt) < ttl {
		return entry.value, nil
	}

	// no single-flight; concurrent callers for the same missing key each invoke the loader
	value, err = loader(ctx)
	if err != nil {
		return
	}

	c.mutex.Lock()
	c.entries[key] = cacheEntry{value: value, storedAt: c.now()}
	c.mutex.Unlock()

	return
}

func (c *inMemoryCache) Invalidate(keyPrefix string) {

	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, keyPrefix) {
			delete(c.entries, key)
		}
	}
}

func (c *inMemoryCache) Len() int {

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

// RepositoryKey builds a cache key scoped to a single repository so all of its entries
// can be dropped at once via Invalidate(RepositoryKey(owner, repo)). The repository
// segment is always colon-terminated so the prefix can't bleed into repositories whose
// name merely starts with the same characters.
func RepositoryKey(repoOwner, repoName string, parts ...string) string {
	return "github:" + repoOwner + "/" + repoName + ":" + strings.Join(parts, ":")
}
