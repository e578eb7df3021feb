// Package cache provides a generic, thread-safe cache with a soft size limit.
//
//	c := cache.New[string, *Decoded](100)
//	v, hit, err := c.Load(path, isFresh, decode)
//
// When the soft limit is exceeded the least recently used quarter of the
// entries is evicted. A limit of 0 means unlimited.
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
