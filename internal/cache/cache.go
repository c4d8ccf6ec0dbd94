package cache

import "time"

// Cache defines a minimal key-value cache API with optional TTL per entry.
// Implementations must be safe for concurrent use.
type Cache[K comparable, V any] interface {
	// Get returns the value and whether it was present and not expired.
	Get(key K) (V, bool)

	// Set stores the value with an optional TTL. If ttl <= 0, the entry does not expire.
	Set(key K, value V, ttl time.Duration)

	// GetOrLoad returns the cached value or calls load, caching its result for ttl.
	// Errors from load are returned and nothing is cached.
	GetOrLoad(key K, ttl time.Duration, load func() (V, error)) (V, error)

	// Delete removes keys if present.
	Delete(keys ...K)

	// Len returns the number of non-expired items currently stored.
	Len() int

	// Clear removes all entries.
	Clear()

	// PurgeExpired scans and removes expired entries.
	PurgeExpired()
}
