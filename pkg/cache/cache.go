// Package cache defines the unified response cache used by the API
// client: one Store contract with explicit TTL and capacity, an
// in-memory tier, a persistent SQLite tier, and a composite that
// stacks them.
package cache

import "github.com/holocron-cli/holocron/pkg/models"

// Store is a byte-value cache keyed by request URL.
type Store interface {
	// Get returns the cached value for key, or false when the key is
	// absent or its entry has expired.
	Get(key string) ([]byte, bool)
	// Put stores value under key, replacing any previous entry.
	Put(key string, value []byte) error
	// Clear removes entries. With expiredOnly set, live entries survive.
	Clear(expiredOnly bool) error
	// Stats reports entry and hit counters.
	Stats() (models.CacheStats, error)
	// Close releases any resources held by the store.
	Close() error
}
