package main

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/holocron-cli/holocron/pkg/cache"
	"github.com/holocron-cli/holocron/pkg/cache/memory"
	sqlitecache "github.com/holocron-cli/holocron/pkg/cache/sqlite"
	"github.com/holocron-cli/holocron/pkg/config"
	"github.com/holocron-cli/holocron/pkg/history"
	"github.com/holocron-cli/holocron/pkg/logging"
	"github.com/holocron-cli/holocron/pkg/swapi"
)

// openStore assembles the two cache tiers from config. Returns nil
// when caching is disabled.
func openStore(cfg *config.Config) (*cache.Tiered, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	disk, err := sqlitecache.New(cfg.CachePath(), cfg.Cache.DiskTTL)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}
	mem := memory.New(cfg.Cache.Capacity, cfg.Cache.TTL)
	return cache.NewTiered(mem, disk), nil
}

// newClient wires config, logging, the cache tiers, and the history
// recorder into an API client. The returned cleanup closes whatever
// was opened, in reverse order.
func newClient(configPath string) (*swapi.Client, *config.Config, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, nil, nil, err
	}

	logger, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, nil, nil, err
	}
	logger = logger.With().Str("run_id", uuid.NewString()).Logger()

	cleanups := []func(){closeLog}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var store cache.Store
	tiered, err := openStore(cfg)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	if tiered != nil {
		store = tiered
		cleanups = append(cleanups, func() { _ = tiered.Close() })
	}

	var rec history.Recorder
	if cfg.History.Enabled {
		sqlRec, err := history.New(cfg.HistoryPath())
		if err != nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("init history: %w", err)
		}
		rec = sqlRec
		cleanups = append(cleanups, func() { _ = sqlRec.Close() })
	}

	return swapi.New(cfg, store, rec, logger), cfg, cleanup, nil
}
