// Package history records every character search as a structured
// event and serves the aggregates behind the plot and history
// commands. One row per search with explicit nullable fields replaces
// the old habit of mining a free-text log with regular expressions.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/holocron-cli/holocron/pkg/models"
)

// Recorder records and queries search events.
type Recorder interface {
	// Record stores one search event. Empty ID and CreatedAt are
	// filled in.
	Record(ctx context.Context, ev models.SearchEvent) error
	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]models.SearchEvent, error)
	// SearchCounts tallies events per query name.
	SearchCounts(ctx context.Context) ([]models.NameCount, error)
	// ResultCounts tallies events per result name, skipping searches
	// that matched nothing.
	ResultCounts(ctx context.Context) ([]models.NameCount, error)
	// LatencyByName averages elapsed time per query name, slowest
	// first, skipping events with unknown timing.
	LatencyByName(ctx context.Context) ([]models.NameLatency, error)
	// Purge deletes events older than the given age and reports how
	// many were removed.
	Purge(ctx context.Context, olderThan time.Duration) (int64, error)
	// Close releases resources.
	Close() error
}

// SQLiteRecorder implements Recorder with a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
}

const createEventsTable = `
CREATE TABLE IF NOT EXISTS search_events (
	id TEXT PRIMARY KEY,
	query TEXT NOT NULL,
	result_name TEXT,
	result_count INTEGER NOT NULL DEFAULT 0,
	elapsed_ms INTEGER,
	cache_hit INTEGER NOT NULL DEFAULT 0,
	error TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_events_query ON search_events(query);
CREATE INDEX IF NOT EXISTS idx_events_created ON search_events(created_at);
`

// New creates a SQLiteRecorder and runs auto-migration.
func New(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(createEventsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}

	return &SQLiteRecorder{db: db}, nil
}

// Record stores one search event. A missing ID gets a fresh ULID so
// rows sort by creation time; a zero CreatedAt becomes now.
func (r *SQLiteRecorder) Record(ctx context.Context, ev models.SearchEvent) error {
	if ev.ID == "" {
		ev.ID = ulid.Make().String()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO search_events (id, query, result_name, result_count, elapsed_ms, cache_hit, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Query, nullIfEmpty(ev.ResultName), ev.ResultCount,
		nullIfUnknown(ev.ElapsedMS), ev.CacheHit, nullIfEmpty(ev.Error), ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (r *SQLiteRecorder) Recent(ctx context.Context, limit int) ([]models.SearchEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, query, result_name, result_count, elapsed_ms, cache_hit, error, created_at
		 FROM search_events ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var events []models.SearchEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func scanEvent(rows *sql.Rows) (models.SearchEvent, error) {
	var ev models.SearchEvent
	var resultName, errText sql.NullString
	var elapsed sql.NullInt64

	if err := rows.Scan(&ev.ID, &ev.Query, &resultName, &ev.ResultCount, &elapsed, &ev.CacheHit, &errText, &ev.CreatedAt); err != nil {
		return models.SearchEvent{}, fmt.Errorf("scan event: %w", err)
	}

	ev.ResultName = resultName.String
	ev.Error = errText.String
	ev.ElapsedMS = models.ElapsedUnknown
	if elapsed.Valid {
		ev.ElapsedMS = elapsed.Int64
	}
	return ev, nil
}

// SearchCounts tallies events per query name, most searched first.
func (r *SQLiteRecorder) SearchCounts(ctx context.Context) ([]models.NameCount, error) {
	return r.countBy(ctx,
		`SELECT query, COUNT(*) FROM search_events
		 GROUP BY query ORDER BY COUNT(*) DESC, query ASC`)
}

// ResultCounts tallies events per result name, most returned first.
// Searches that matched nothing carry a NULL result name and are
// skipped.
func (r *SQLiteRecorder) ResultCounts(ctx context.Context) ([]models.NameCount, error) {
	return r.countBy(ctx,
		`SELECT result_name, COUNT(*) FROM search_events
		 WHERE result_name IS NOT NULL
		 GROUP BY result_name ORDER BY COUNT(*) DESC, result_name ASC`)
}

func (r *SQLiteRecorder) countBy(ctx context.Context, query string) ([]models.NameCount, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	var counts []models.NameCount
	for rows.Next() {
		var c models.NameCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// LatencyByName averages elapsed time per query name, slowest first.
// Events without a known elapsed time (legacy imports) are excluded by
// the NULL filter rather than dragging averages toward zero.
func (r *SQLiteRecorder) LatencyByName(ctx context.Context) ([]models.NameLatency, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT query, AVG(elapsed_ms), COUNT(*) FROM search_events
		 WHERE elapsed_ms IS NOT NULL
		 GROUP BY query ORDER BY AVG(elapsed_ms) DESC, query ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("latency by name: %w", err)
	}
	defer rows.Close()

	var latencies []models.NameLatency
	for rows.Next() {
		var l models.NameLatency
		if err := rows.Scan(&l.Name, &l.AvgMS, &l.Searches); err != nil {
			return nil, fmt.Errorf("scan latency: %w", err)
		}
		latencies = append(latencies, l)
	}
	return latencies, rows.Err()
}

// Purge deletes events older than the given age.
func (r *SQLiteRecorder) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := r.db.ExecContext(ctx, `DELETE FROM search_events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge history: %w", err)
	}
	return res.RowsAffected()
}

// Close releases the database connection.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullIfUnknown(ms int64) any {
	if ms < 0 {
		return nil
	}
	return ms
}
