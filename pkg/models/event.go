package models

import "time"

// ElapsedUnknown marks a search event whose timing was never captured.
// Only events imported from legacy text logs carry it; live searches
// always measure their elapsed time.
const ElapsedUnknown int64 = -1

// SearchEvent is one recorded character search. ResultName is empty
// when the search matched nothing or failed, and Error is empty on
// success; both are stored as NULL in that case so aggregates skip them.
type SearchEvent struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	ResultName  string    `json:"result_name,omitempty"`
	ResultCount int       `json:"result_count"`
	ElapsedMS   int64     `json:"elapsed_ms"`
	CacheHit    bool      `json:"cache_hit"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NameCount is a per-name tally backing the search and result charts.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NameLatency aggregates elapsed search time per query name.
type NameLatency struct {
	Name     string  `json:"name"`
	AvgMS    float64 `json:"avg_ms"`
	Searches int     `json:"searches"`
}
