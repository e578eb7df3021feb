package cache

import (
	"sort"
	"sync"
)

// Cache is a generic thread-safe LRU cache with soft limit.
// When the cache exceeds softLimit, oldest entries are evicted.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*cacheEntry[V]
	softLimit int
	tick      int64 // monotonic access counter

	hits   uint64
	misses uint64
	stale  uint64
}

type cacheEntry[V any] struct {
	value V
	atime int64
}

// New creates a new cache with the given soft limit.
// A softLimit of 0 means unlimited.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*cacheEntry[V]),
		softLimit: softLimit,
	}
}

// Set stores a value in the cache, replacing any previous entry.
// If the cache exceeds softLimit after insertion, oldest entries are evicted.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	c.entries[key] = &cacheEntry[V]{
		value: value,
		atime: c.tick,
	}

	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
}

// Load returns the cached value for key if fresh reports it still valid.
// Otherwise it calls load, caches the result and returns it; a stale entry
// is replaced. The second result reports a cache hit. Errors from load are
// returned as is and leave the cache unchanged.
//
// load runs without the lock held, so concurrent misses on the same key
// may load twice; the last one wins.
func (c *Cache[K, V]) Load(key K, fresh func(V) bool, load func() (V, error)) (V, bool, error) {
	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		if fresh(entry.value) {
			c.hits++
			c.tick++
			entry.atime = c.tick
			v := entry.value
			c.mu.Unlock()
			return v, true, nil
		}
		c.stale++
	} else {
		c.misses++
	}
	c.mu.Unlock()

	v, err := load()
	if err != nil {
		var zero V
		return zero, false, err
	}
	c.Set(key, v)
	return v, false, nil
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		return true
	}
	return false
}

// Clear removes all entries from the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*cacheEntry[V])
	c.tick = 0
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Len:      len(c.entries),
		Capacity: c.softLimit,
		Hits:     c.hits,
		Misses:   c.misses,
		Stale:    c.stale,
	}
}

// evictOldest removes the least recently used entries until the cache
// holds three quarters of its soft limit. Caller must hold c.mu.
func (c *Cache[K, V]) evictOldest() {
	targetSize := c.softLimit * 3 / 4
	if targetSize < 1 {
		targetSize = 1
	}
	toEvict := len(c.entries) - targetSize
	if toEvict <= 0 {
		return
	}

	type entry struct {
		key   K
		atime int64
	}
	entries := make([]entry, 0, len(c.entries))
	for key, e := range c.entries {
		entries = append(entries, entry{key: key, atime: e.atime})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].atime < entries[j].atime })
	for _, e := range entries[:toEvict] {
		delete(c.entries, e.key)
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the soft limit (0 = unlimited).
	Capacity int
	// Hits is the number of successful lookups.
	Hits uint64
	// Misses is the number of failed lookups.
	Misses uint64
	// Stale is the number of entries Load found but had to reload.
	Stale uint64
}
