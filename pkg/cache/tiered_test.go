package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/holocron-cli/holocron/pkg/cache/memory"
	"github.com/holocron-cli/holocron/pkg/cache/sqlite"
)

func newTestTiered(t *testing.T) (*Tiered, *memory.Cache, *sqlite.Cache) {
	t.Helper()
	l1 := memory.New(100, time.Hour)
	l2, err := sqlite.New(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	tc := NewTiered(l1, l2)
	t.Cleanup(func() { _ = tc.Close() })
	return tc, l1, l2
}

func TestTieredPutWritesBoth(t *testing.T) {
	tc, l1, l2 := newTestTiered(t)

	if err := tc.Put("url", []byte("body")); err != nil {
		t.Fatal(err)
	}

	if _, ok := l1.Get("url"); !ok {
		t.Error("expected memory tier to hold the entry")
	}
	if _, ok := l2.Get("url"); !ok {
		t.Error("expected disk tier to hold the entry")
	}
}

func TestTieredGetPromotes(t *testing.T) {
	tc, l1, l2 := newTestTiered(t)

	// Seed only the disk tier, as if a previous process had cached it.
	if err := l2.Put("url", []byte("body")); err != nil {
		t.Fatal(err)
	}

	value, ok := tc.Get("url")
	if !ok {
		t.Fatal("expected tiered hit from disk")
	}
	if string(value) != "body" {
		t.Errorf("unexpected value: %s", value)
	}

	if _, ok := l1.Get("url"); !ok {
		t.Error("disk hit should be promoted into memory")
	}
}

func TestTieredMiss(t *testing.T) {
	tc, _, _ := newTestTiered(t)

	if _, ok := tc.Get("absent"); ok {
		t.Error("expected miss for uncached URL")
	}
}

func TestTieredClear(t *testing.T) {
	tc, l1, l2 := newTestTiered(t)

	_ = tc.Put("url", []byte("body"))

	if err := tc.Clear(false); err != nil {
		t.Fatal(err)
	}

	if _, ok := l1.Get("url"); ok {
		t.Error("memory tier should be empty after clear")
	}
	if _, ok := l2.Get("url"); ok {
		t.Error("disk tier should be empty after clear")
	}
}

func TestTieredStats(t *testing.T) {
	tc, _, _ := newTestTiered(t)

	_ = tc.Put("url", []byte("body"))
	tc.Get("url")    // memory hit
	tc.Get("absent") // full miss

	ts, err := tc.TierStats()
	if err != nil {
		t.Fatal(err)
	}
	if ts.Memory.Hits != 1 {
		t.Errorf("expected 1 memory hit, got %d", ts.Memory.Hits)
	}
	if ts.Combined.Misses != 1 {
		t.Errorf("expected 1 combined miss, got %d", ts.Combined.Misses)
	}
	if ts.Combined.Entries != 2 {
		t.Errorf("expected 2 combined entries (one per tier), got %d", ts.Combined.Entries)
	}
}
