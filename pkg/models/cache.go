package models

// CacheStats reports entry and hit counters for one cache tier.
type CacheStats struct {
	Entries int64 `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// TieredCacheStats breaks cache performance down by tier. Combined
// sums entries and counts a hit whenever either tier answered.
type TieredCacheStats struct {
	Memory   CacheStats `json:"memory"`
	Disk     CacheStats `json:"disk"`
	Combined CacheStats `json:"combined"`
}
