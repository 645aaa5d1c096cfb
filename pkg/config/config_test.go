package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.BaseURL != "https://www.swapi.tech/api" {
		t.Errorf("unexpected base URL: %s", cfg.BaseURL)
	}
	if cfg.Cache.Capacity != 100 {
		t.Errorf("expected capacity 100, got %d", cfg.Cache.Capacity)
	}
	if cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("expected 10m TTL, got %v", cfg.Cache.TTL)
	}
	if !cfg.History.Enabled {
		t.Error("expected history enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_DATA_DIR", "/tmp/holocron-test")

	content := `
base_url: "https://example.test/api"
timeout: 5s
data_dir: ${TEST_DATA_DIR}
cache:
  enabled: true
  capacity: 10
  ttl: 30s
  disk_ttl: 1h
log:
  level: debug
`
	dir := t.TempDir()
	path := filepath.Join(dir, "holocron.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BaseURL != "https://example.test/api" {
		t.Errorf("expected example base URL, got %s", cfg.BaseURL)
	}
	if cfg.DataDir != "/tmp/holocron-test" {
		t.Errorf("env var not expanded: got %s", cfg.DataDir)
	}
	if cfg.Cache.TTL != 30*time.Second {
		t.Errorf("expected 30s TTL, got %v", cfg.Cache.TTL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Log.Level)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Capacity != 100 {
		t.Errorf("expected defaults without a file, got capacity %d", cfg.Cache.Capacity)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "holocron.yaml"))
	if err != nil {
		t.Fatalf("absent file should be skipped: %v", err)
	}
	if cfg.BaseURL != "https://www.swapi.tech/api" {
		t.Errorf("expected defaults for absent file, got base URL %s", cfg.BaseURL)
	}
}

func TestLoadUnparseable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holocron.yaml")
	if err := os.WriteFile(path, []byte("cache: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOLOCRON_BASE_URL", "https://override.test/api")
	t.Setenv("HOLOCRON_CACHE_TTL", "90s")
	t.Setenv("HOLOCRON_CHART_WIDTH", "64")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "https://override.test/api" {
		t.Errorf("env override not applied: %s", cfg.BaseURL)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Errorf("expected 90s TTL, got %v", cfg.Cache.TTL)
	}
	if cfg.Chart.Width != 64 {
		t.Errorf("expected chart width 64, got %d", cfg.Chart.Width)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.BaseURL = "not-a-url"
	cfg.Log.Level = "loud"
	cfg.Cache.Capacity = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"base_url", "log level", "capacity"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %q, got: %v", want, err)
		}
	}
}

func TestDBPaths(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/data/holocron"
	if cfg.CachePath() != filepath.Join("/data/holocron", "cache.db") {
		t.Errorf("unexpected cache path: %s", cfg.CachePath())
	}
	if cfg.HistoryPath() != filepath.Join("/data/holocron", "history.db") {
		t.Errorf("unexpected history path: %s", cfg.HistoryPath())
	}
}
