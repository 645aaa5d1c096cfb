// Package swapi is the client for the Star Wars API at swapi.tech. It
// owns the fetch/cache/record pipeline: every request flows through
// one fetch path that validates the response and stamps it with a
// retrieval timestamp, wrapped by the tiered response cache, with each
// search recorded to history.
package swapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/holocron-cli/holocron/pkg/cache"
	"github.com/holocron-cli/holocron/pkg/config"
	"github.com/holocron-cli/holocron/pkg/history"
	"github.com/holocron-cli/holocron/pkg/models"
)

// cachedAtLayout is the timestamp format stamped onto fetched records.
const cachedAtLayout = "2006-01-02 15:04:05.000000"

// Client talks to the Star Wars API. The cache store and history
// recorder are owned by the instance; either may be nil to disable
// that concern.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   cache.Store
	rec     history.Recorder
	logger  zerolog.Logger
}

// New creates a Client for the API at cfg.BaseURL.
func New(cfg *config.Config, store cache.Store, rec history.Recorder, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   &http.Client{Timeout: cfg.Timeout},
		store:   store,
		rec:     rec,
		logger:  logger,
	}
}

// requestURL joins a relative path onto the base URL. Absolute URLs,
// like the homeworld references the API embeds, pass through as-is.
func (c *Client) requestURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + path
}

// fetch performs one GET against the API and returns the raw result
// objects, each stamped with a cached_at timestamp. A non-200 status
// returns *UpstreamError; a 200 with an empty result set returns
// ErrNotFound. No retries.
func (c *Client) fetch(ctx context.Context, path string) ([]json.RawMessage, error) {
	reqURL := c.requestURL(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reach api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results, err := normalizeResult(envelope.Result)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	return stampAll(results, time.Now())
}

// normalizeResult turns the upstream result field into a slice of raw
// objects. Name searches return an array; single-resource lookups
// return one object, normalized here to a one-element slice.
func normalizeResult(raw json.RawMessage) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(raw))
	switch {
	case trimmed == "" || trimmed == "null":
		return nil, nil
	case strings.HasPrefix(trimmed, "["):
		var results []json.RawMessage
		if err := json.Unmarshal(raw, &results); err != nil {
			return nil, fmt.Errorf("decode result list: %w", err)
		}
		return results, nil
	case strings.HasPrefix(trimmed, "{"):
		return []json.RawMessage{raw}, nil
	default:
		return nil, fmt.Errorf("unexpected result shape: %s", trimmed)
	}
}

// stampAll injects a cached_at timestamp into each result object. The
// stamp is applied before the response is cached, so cache hits replay
// the stamp from write time and staleness stays visible to the caller.
func stampAll(results []json.RawMessage, now time.Time) ([]json.RawMessage, error) {
	stamp, err := json.Marshal(now.Format(cachedAtLayout))
	if err != nil {
		return nil, fmt.Errorf("marshal stamp: %w", err)
	}

	stamped := make([]json.RawMessage, 0, len(results))
	for _, raw := range results {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("decode result object: %w", err)
		}
		obj["cached_at"] = stamp
		out, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("stamp result object: %w", err)
		}
		stamped = append(stamped, out)
	}
	return stamped, nil
}

// cachedFetch wraps fetch behind the tiered store, keyed by the full
// request URL. The reported bool is true when the response came from
// the cache.
func (c *Client) cachedFetch(ctx context.Context, path string) ([]json.RawMessage, bool, error) {
	key := c.requestURL(path)

	if c.store != nil {
		if body, ok := c.store.Get(key); ok {
			var results []json.RawMessage
			if err := json.Unmarshal(body, &results); err == nil {
				c.logger.Debug().Str("url", key).Msg("cache hit")
				return results, true, nil
			}
			c.logger.Warn().Str("url", key).Msg("discarding corrupt cache entry")
		}
	}

	results, err := c.fetch(ctx, path)
	if err != nil {
		return nil, false, err
	}

	if c.store != nil {
		body, err := json.Marshal(results)
		if err != nil {
			return results, false, nil
		}
		if err := c.store.Put(key, body); err != nil {
			c.logger.Warn().Err(err).Str("url", key).Msg("cache write failed")
		}
	}
	return results, false, nil
}

// ClearCache empties every cache tier through the one shared entry
// point. After a nil return the next identical request hits the
// network, never a stale store.
func (c *Client) ClearCache() error {
	if c.store == nil {
		return nil
	}
	return c.store.Clear(false)
}

type personEnvelope struct {
	Properties models.Character `json:"properties"`
	CachedAt   string           `json:"cached_at"`
}

type planetEnvelope struct {
	Properties models.Planet `json:"properties"`
	CachedAt   string        `json:"cached_at"`
}

// SearchPeople looks up characters by name. The bool reports whether
// the response was served from cache.
func (c *Client) SearchPeople(ctx context.Context, name string) ([]models.Character, bool, error) {
	path := "/people/?name=" + url.QueryEscape(name)

	raws, hit, err := c.cachedFetch(ctx, path)
	if err != nil {
		return nil, hit, err
	}

	chars := make([]models.Character, 0, len(raws))
	for _, raw := range raws {
		var env personEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, hit, fmt.Errorf("decode character: %w", err)
		}
		ch := env.Properties
		ch.CachedAt = env.CachedAt
		chars = append(chars, ch)
	}
	return chars, hit, nil
}

// Planet fetches a single planet by resource URL or path.
func (c *Client) Planet(ctx context.Context, ref string) (models.Planet, error) {
	raws, _, err := c.cachedFetch(ctx, ref)
	if err != nil {
		return models.Planet{}, err
	}

	var env planetEnvelope
	if err := json.Unmarshal(raws[0], &env); err != nil {
		return models.Planet{}, fmt.Errorf("decode planet: %w", err)
	}
	p := env.Properties
	p.CachedAt = env.CachedAt
	return p, nil
}
