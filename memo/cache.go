package memo

import (
	"sync"

	"github.com/flarekit/flare"
	"golang.org/x/sync/singleflight"
)

// Cache is a fingerprint-keyed LRU with at-most-one-concurrent-build: two
// goroutines requesting the same fingerprint at the same time block on one
// build rather than racing to compute it twice. Values are stored as `any`
// and type-asserted back by the task that owns the cache, since each task's
// cached value has a different concrete type (an *Image, a []Ray, a
// rasterized tile set, ...).
type Cache struct {
	mu       sync.Mutex
	entries  map[flare.Fingerprint]*entry
	lru      *lruList
	capacity int

	group singleflight.Group

	hits, misses, evictions uint64
}

type entry struct {
	value any
	node  *lruNode
}

// New creates a cache with the given capacity. A capacity of 0 or less
// is treated as 1.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	return &Cache{
		entries:  make(map[flare.Fingerprint]*entry),
		lru:      newLRUList(),
		capacity: capacity,
	}
}

// Get retrieves a cached value by fingerprint.
func (c *Cache) Get(key flare.Fingerprint) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.lru.MoveToFront(e.node)
	c.hits++
	return e.value, true
}

// Set stores a value, evicting the least-recently-used entry if the cache
// is at capacity.
func (c *Cache) Set(key flare.Fingerprint, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value)
}

func (c *Cache) setLocked(key flare.Fingerprint, value any) {
	if existing, ok := c.entries[key]; ok {
		existing.value = value
		c.lru.MoveToFront(existing.node)
		return
	}

	for c.lru.Len() >= c.capacity {
		oldest, ok := c.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(c.entries, oldest)
		c.evictions++
	}

	node := c.lru.PushFront(key)
	c.entries[key] = &entry{value: value, node: node}
}

// GetOrBuild returns the cached value for key, or calls build to produce
// and cache one. Concurrent calls for the same key share a single build:
// this is the cache-commit invariant the fingerprint/singleflight pairing
// exists to guarantee.
func (c *Cache) GetOrBuild(key flare.Fingerprint, build func() (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		// Re-check under the singleflight guard: another caller may have
		// finished a build for this key while we were waiting to enter Do.
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := build()
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Delete removes an entry, returning whether it was present.
func (c *Cache) Delete(key flare.Fingerprint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.lru.Remove(e.node)
	delete(c.entries, key)
	return true
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[flare.Fingerprint]*entry)
	c.lru.Clear()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats reports cache hit/miss/eviction counters.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}

// Stats returns current cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var hitRate float64
	if total := c.hits + c.misses; total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	return Stats{
		Len:       len(c.entries),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		HitRate:   hitRate,
	}
}
