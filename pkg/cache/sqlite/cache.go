// Package sqlite implements the persistent cache tier backed by a
// SQLite database, so cached upstream responses survive process
// restarts.
package sqlite

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/holocron-cli/holocron/pkg/models"
)

// Cache is an exact-match response cache keyed by request URL.
type Cache struct {
	db     *sql.DB
	ttl    time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

const createResponsesTable = `
CREATE TABLE IF NOT EXISTS responses (
	url TEXT PRIMARY KEY,
	body BLOB NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	ttl_seconds INTEGER NOT NULL
);
`

// New creates a Cache at the given database path with a default TTL
// applied to every entry written through it.
func New(dbPath string, ttl time.Duration) (*Cache, error) {
	// _time_format stores timestamps in the form SQLite's own date
	// functions parse, which the expired-entry sweep relies on.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	if _, err := db.Exec(createResponsesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

// Get retrieves a cached response body. Returns false if the URL is
// not cached or its entry has expired.
func (c *Cache) Get(url string) ([]byte, bool) {
	var body []byte
	var createdAt time.Time
	var ttlSeconds int64

	err := c.db.QueryRow(
		`SELECT body, created_at, ttl_seconds FROM responses WHERE url = ?`,
		url,
	).Scan(&body, &createdAt, &ttlSeconds)

	if err != nil {
		c.misses.Add(1)
		return nil, false
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	if time.Since(createdAt) > ttl {
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return body, true
}

// Put stores a response body for the URL, replacing any previous entry.
func (c *Cache) Put(url string, body []byte) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO responses (url, body, created_at, ttl_seconds)
		 VALUES (?, ?, ?, ?)`,
		url, body, time.Now().UTC(), int64(c.ttl.Seconds()),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Clear removes cache entries. If expiredOnly is true, only expired
// entries are removed.
func (c *Cache) Clear(expiredOnly bool) error {
	var query string
	if expiredOnly {
		query = `DELETE FROM responses WHERE (julianday('now') - julianday(created_at)) * 86400 > ttl_seconds`
	} else {
		query = `DELETE FROM responses`
	}
	_, err := c.db.Exec(query)
	if err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}

// Stats returns cache performance metrics.
func (c *Cache) Stats() (models.CacheStats, error) {
	var count int64
	err := c.db.QueryRow(`SELECT COUNT(*) FROM responses`).Scan(&count)
	if err != nil {
		return models.CacheStats{}, fmt.Errorf("cache stats: %w", err)
	}
	return models.CacheStats{
		Entries: count,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}
