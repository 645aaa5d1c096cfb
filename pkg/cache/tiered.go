package cache

import "github.com/holocron-cli/holocron/pkg/models"

// Tiered stacks a fast in-memory tier (l1) over a persistent tier (l2).
// Reads check l1 first and repopulate it from l2 on a disk hit; writes
// and clears reach both tiers.
type Tiered struct {
	l1 Store
	l2 Store
}

// NewTiered composes two stores into one. l1 is consulted first.
func NewTiered(l1, l2 Store) *Tiered {
	return &Tiered{l1: l1, l2: l2}
}

// Get returns the cached value for key from the first tier that holds
// a live entry. A disk hit is promoted into memory so the next lookup
// answers without touching disk.
func (t *Tiered) Get(key string) ([]byte, bool) {
	if data, ok := t.l1.Get(key); ok {
		return data, true
	}
	data, ok := t.l2.Get(key)
	if !ok {
		return nil, false
	}
	_ = t.l1.Put(key, data)
	return data, true
}

// Put writes the value to both tiers.
func (t *Tiered) Put(key string, value []byte) error {
	if err := t.l1.Put(key, value); err != nil {
		return err
	}
	return t.l2.Put(key, value)
}

// Clear empties both tiers. Both are attempted even when the first
// fails; the first error is returned. After a nil return no lookup can
// observe pre-clear data from either tier.
func (t *Tiered) Clear(expiredOnly bool) error {
	err1 := t.l1.Clear(expiredOnly)
	err2 := t.l2.Clear(expiredOnly)
	if err1 != nil {
		return err1
	}
	return err2
}

// Stats reports the combined view of both tiers.
func (t *Tiered) Stats() (models.CacheStats, error) {
	ts, err := t.TierStats()
	if err != nil {
		return models.CacheStats{}, err
	}
	return ts.Combined, nil
}

// TierStats reports per-tier counters alongside the combined view.
// Combined hits count lookups answered by either tier; combined misses
// count lookups that fell through both.
func (t *Tiered) TierStats() (models.TieredCacheStats, error) {
	mem, err := t.l1.Stats()
	if err != nil {
		return models.TieredCacheStats{}, err
	}
	disk, err := t.l2.Stats()
	if err != nil {
		return models.TieredCacheStats{}, err
	}
	return models.TieredCacheStats{
		Memory: mem,
		Disk:   disk,
		Combined: models.CacheStats{
			Entries: mem.Entries + disk.Entries,
			Hits:    mem.Hits + disk.Hits,
			Misses:  disk.Misses,
		},
	}, nil
}

// Close releases both tiers. Both are closed even when the first
// fails; the first error is returned.
func (t *Tiered) Close() error {
	err1 := t.l1.Close()
	err2 := t.l2.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
