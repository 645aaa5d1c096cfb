// Package memory implements the in-process cache tier: a fixed
// capacity LRU whose entries also expire by age.
package memory

import (
	"sync"
	"time"

	"github.com/holocron-cli/holocron/pkg/models"
)

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
	prev      *entry
	next      *entry
}

// Cache is an LRU cache with per-entry TTL. The recency list runs from
// head (most recent) to tail (least recent) between two sentinel nodes,
// so every list operation is O(1).
type Cache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*entry
	head     *entry
	tail     *entry
	hits     int64
	misses   int64
}

// New creates a Cache holding at most capacity entries, each living
// for ttl after its last write. Non-positive arguments fall back to
// defaults.
func New(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = 100
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	c := &Cache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry),
		head:     &entry{},
		tail:     &entry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the value for key and marks it most recently used.
// Expired entries are removed on sight and reported as misses.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.unlink(e)
		delete(c.items, key)
		c.misses++
		return nil, false
	}

	c.moveToFront(e)
	c.hits++
	return e.value, true
}

// Put stores value under key, resetting its TTL. When the cache is
// full the least recently used entry is evicted first.
func (c *Cache) Put(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = time.Now().Add(c.ttl)
		c.moveToFront(e)
		return nil
	}

	for len(c.items) >= c.capacity {
		c.evictOldest()
	}

	e := &entry{key: key, value: value, expiresAt: time.Now().Add(c.ttl)}
	c.items[key] = e
	c.pushFront(e)
	return nil
}

// Clear removes entries. With expiredOnly set, live entries survive.
func (c *Cache) Clear(expiredOnly bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !expiredOnly {
		c.items = make(map[string]*entry)
		c.head.next = c.tail
		c.tail.prev = c.head
		return nil
	}

	now := time.Now()
	for key, e := range c.items {
		if now.After(e.expiresAt) {
			c.unlink(e)
			delete(c.items, key)
		}
	}
	return nil
}

// Stats reports entry and hit counters.
func (c *Cache) Stats() (models.CacheStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.CacheStats{
		Entries: int64(len(c.items)),
		Hits:    c.hits,
		Misses:  c.misses,
	}, nil
}

// Close drops all entries. The cache stays usable for reads, which
// simply miss.
func (c *Cache) Close() error {
	return c.Clear(false)
}

func (c *Cache) pushFront(e *entry) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *Cache) unlink(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil
	e.next = nil
}

func (c *Cache) moveToFront(e *entry) {
	c.unlink(e)
	c.pushFront(e)
}

func (c *Cache) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.unlink(oldest)
	delete(c.items, oldest.key)
}
