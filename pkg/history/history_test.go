package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/holocron-cli/holocron/pkg/models"
)

func newTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history_test.db")
	r, err := New(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRecordAndRecent(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	ev := models.SearchEvent{
		Query:       "Luke Skywalker",
		ResultName:  "Luke Skywalker",
		ResultCount: 1,
		ElapsedMS:   420,
		CacheHit:    false,
	}
	if err := r.Record(ctx, ev); err != nil {
		t.Fatal(err)
	}

	events, err := r.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	got := events[0]
	if got.ID == "" {
		t.Error("expected a generated ID")
	}
	if got.Query != "Luke Skywalker" || got.ResultName != "Luke Skywalker" {
		t.Errorf("unexpected event: %+v", got)
	}
	if got.ElapsedMS != 420 {
		t.Errorf("expected 420ms, got %d", got.ElapsedMS)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be filled in")
	}
}

func TestRecentOrderAndLimit(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i, q := range []string{"first", "second", "third"} {
		_ = r.Record(ctx, models.SearchEvent{
			Query:     q,
			ElapsedMS: 100,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		})
	}

	events, err := r.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Query != "third" || events[1].Query != "second" {
		t.Errorf("expected newest first, got %q then %q", events[0].Query, events[1].Query)
	}
}

func TestFailedSearchRoundTrip(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	_ = r.Record(ctx, models.SearchEvent{
		Query:     "Jar Jar",
		ElapsedMS: 120,
		Error:     "the force is not strong within you",
	})

	events, err := r.Recent(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	got := events[0]
	if got.ResultName != "" {
		t.Errorf("expected empty result name, got %q", got.ResultName)
	}
	if got.Error != "the force is not strong within you" {
		t.Errorf("unexpected error text: %q", got.Error)
	}
	if got.ElapsedMS != 120 {
		t.Errorf("failed searches keep their timing, got %d", got.ElapsedMS)
	}
}

func TestUnknownElapsedRoundTrip(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	_ = r.Record(ctx, models.SearchEvent{Query: "Luke", ElapsedMS: models.ElapsedUnknown})

	events, err := r.Recent(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if events[0].ElapsedMS != models.ElapsedUnknown {
		t.Errorf("expected unknown elapsed to round-trip, got %d", events[0].ElapsedMS)
	}
}

func TestSearchCounts(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	for _, q := range []string{"Luke", "Leia", "Luke", "Luke", "Han"} {
		_ = r.Record(ctx, models.SearchEvent{Query: q, ElapsedMS: 100})
	}

	counts, err := r.SearchCounts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 3 {
		t.Fatalf("expected 3 names, got %d", len(counts))
	}
	if counts[0].Name != "Luke" || counts[0].Count != 3 {
		t.Errorf("expected Luke x3 first, got %+v", counts[0])
	}
	// Han and Leia tie at 1; alphabetical order breaks the tie.
	if counts[1].Name != "Han" || counts[2].Name != "Leia" {
		t.Errorf("expected alphabetical tiebreak, got %q then %q", counts[1].Name, counts[2].Name)
	}
}

func TestResultCountsSkipFailures(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	_ = r.Record(ctx, models.SearchEvent{Query: "luke", ResultName: "Luke Skywalker", ResultCount: 1, ElapsedMS: 100})
	_ = r.Record(ctx, models.SearchEvent{Query: "luke", ResultName: "Luke Skywalker", ResultCount: 1, ElapsedMS: 100})
	_ = r.Record(ctx, models.SearchEvent{Query: "nobody", ElapsedMS: 100, Error: "not found"})

	counts, err := r.ResultCounts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 1 {
		t.Fatalf("expected 1 result name, got %d", len(counts))
	}
	if counts[0].Name != "Luke Skywalker" || counts[0].Count != 2 {
		t.Errorf("unexpected result counts: %+v", counts[0])
	}
}

func TestLatencyByName(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	_ = r.Record(ctx, models.SearchEvent{Query: "slow", ElapsedMS: 900})
	_ = r.Record(ctx, models.SearchEvent{Query: "slow", ElapsedMS: 1100})
	_ = r.Record(ctx, models.SearchEvent{Query: "fast", ElapsedMS: 50})
	// Unknown timings must not drag the average down.
	_ = r.Record(ctx, models.SearchEvent{Query: "fast", ElapsedMS: models.ElapsedUnknown})

	latencies, err := r.LatencyByName(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(latencies) != 2 {
		t.Fatalf("expected 2 names, got %d", len(latencies))
	}
	if latencies[0].Name != "slow" || latencies[0].AvgMS != 1000 {
		t.Errorf("expected slow at 1000ms first, got %+v", latencies[0])
	}
	if latencies[1].Name != "fast" || latencies[1].AvgMS != 50 || latencies[1].Searches != 1 {
		t.Errorf("expected fast at 50ms from 1 timed search, got %+v", latencies[1])
	}
}

func TestPurge(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_ = r.Record(ctx, models.SearchEvent{Query: "old", ElapsedMS: 100, CreatedAt: now.Add(-48 * time.Hour)})
	_ = r.Record(ctx, models.SearchEvent{Query: "new", ElapsedMS: 100, CreatedAt: now})

	deleted, err := r.Purge(ctx, 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}

	events, _ := r.Recent(ctx, 10)
	if len(events) != 1 || events[0].Query != "new" {
		t.Errorf("expected only the new event to survive, got %+v", events)
	}
}
