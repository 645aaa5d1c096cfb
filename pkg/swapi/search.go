package swapi

import (
	"context"
	"strings"
	"time"

	"github.com/holocron-cli/holocron/pkg/models"
)

// SearchOptions control what a character search renders.
type SearchOptions struct {
	// Homeworld appends each character's homeworld description.
	Homeworld bool
}

// Search looks up name and returns an iterator over formatted text
// blocks, one per matching character. The people fetch happens here
// and the search is recorded to history whether it succeeds or fails;
// homeworld enrichment happens lazily as the caller advances.
func (c *Client) Search(ctx context.Context, name string, opts SearchOptions) (*Results, error) {
	start := time.Now()
	chars, hit, err := c.SearchPeople(ctx, name)
	elapsed := time.Since(start)

	c.recordSearch(ctx, name, chars, hit, elapsed, err)

	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("name", name).
		Int("results", len(chars)).
		Bool("cache_hit", hit).
		Dur("elapsed", elapsed).
		Msg("search complete")

	return &Results{client: c, ctx: ctx, opts: opts, records: chars, idx: -1}, nil
}

func (c *Client) recordSearch(ctx context.Context, query string, chars []models.Character, hit bool, elapsed time.Duration, searchErr error) {
	if c.rec == nil {
		return
	}

	ev := models.SearchEvent{
		Query:       query,
		ResultCount: len(chars),
		ElapsedMS:   elapsed.Milliseconds(),
		CacheHit:    hit,
		CreatedAt:   time.Now().UTC(),
	}
	if len(chars) > 0 {
		ev.ResultName = chars[0].Name
	}
	if searchErr != nil {
		ev.Error = searchErr.Error()
	}

	if err := c.rec.Record(ctx, ev); err != nil {
		c.logger.Warn().Err(err).Str("name", query).Msg("record search event failed")
	}
}

// Results iterates over the formatted blocks of one search in the
// manner of sql.Rows: advance with Next, read with Block, then check
// Err. A Results walks its result set once and is not restartable.
type Results struct {
	client  *Client
	ctx     context.Context
	opts    SearchOptions
	records []models.Character
	idx     int
	block   string
	err     error
}

// Next advances to the next character, formatting its block. It
// returns false when the set is exhausted or a fetch during
// enrichment failed; the whole iteration stops on the first failure.
func (r *Results) Next() bool {
	if r.err != nil {
		return false
	}
	r.idx++
	if r.idx >= len(r.records) {
		return false
	}

	block, err := r.client.formatCharacter(r.ctx, r.records[r.idx], r.opts)
	if err != nil {
		r.err = err
		return false
	}
	r.block = block
	return true
}

// Block returns the formatted text for the current character.
func (r *Results) Block() string {
	return r.block
}

// Err reports the first error encountered while iterating.
func (r *Results) Err() error {
	return r.err
}

// formatCharacter renders one character block: the fields present, in
// fixed order, then the optional homeworld description, then the
// cached_at stamp.
func (c *Client) formatCharacter(ctx context.Context, ch models.Character, opts SearchOptions) (string, error) {
	fields := []struct {
		label string
		value string
	}{
		{"Name", ch.Name},
		{"Height", ch.Height},
		{"Mass", ch.Mass},
		{"Birth Year", ch.BirthYear},
	}

	var lines []string
	for _, f := range fields {
		if f.value != "" {
			lines = append(lines, f.label+": "+f.value)
		}
	}

	if opts.Homeworld && ch.Homeworld != "" {
		desc, err := c.DescribeHomeworld(ctx, ch.Homeworld)
		if err != nil {
			return "", err
		}
		if desc != "" {
			lines = append(lines, desc)
		}
	}

	if ch.CachedAt != "" {
		lines = append(lines, "cached: "+ch.CachedAt)
	}

	return strings.Join(lines, "\n"), nil
}
