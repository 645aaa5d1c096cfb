package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all holocron configuration.
type Config struct {
	BaseURL string        `envconfig:"HOLOCRON_BASE_URL" yaml:"base_url"`
	Timeout time.Duration `envconfig:"HOLOCRON_TIMEOUT" yaml:"timeout"`
	DataDir string        `envconfig:"HOLOCRON_DATA_DIR" yaml:"data_dir"`
	Cache   CacheConfig   `yaml:"cache"`
	History HistoryConfig `yaml:"history"`
	Log     LogConfig     `yaml:"log"`
	Chart   ChartConfig   `yaml:"chart"`
}

// CacheConfig controls the two response cache tiers.
type CacheConfig struct {
	Enabled  bool          `envconfig:"HOLOCRON_CACHE_ENABLED" yaml:"enabled"`
	Capacity int           `envconfig:"HOLOCRON_CACHE_CAPACITY" yaml:"capacity"`
	TTL      time.Duration `envconfig:"HOLOCRON_CACHE_TTL" yaml:"ttl"`
	DiskTTL  time.Duration `envconfig:"HOLOCRON_CACHE_DISK_TTL" yaml:"disk_ttl"`
}

// HistoryConfig controls search event recording.
type HistoryConfig struct {
	Enabled bool `envconfig:"HOLOCRON_HISTORY_ENABLED" yaml:"enabled"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `envconfig:"HOLOCRON_LOG_LEVEL" yaml:"level"`
	File  string `envconfig:"HOLOCRON_LOG_FILE" yaml:"file"`
}

// ChartConfig controls bar chart rendering.
type ChartConfig struct {
	Width int `envconfig:"HOLOCRON_CHART_WIDTH" yaml:"width"` // 0 = detect from terminal
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		BaseURL: "https://www.swapi.tech/api",
		Timeout: 10 * time.Second,
		DataDir: defaultDataDir(),
		Cache: CacheConfig{
			Enabled:  true,
			Capacity: 100,
			TTL:      10 * time.Minute,
			DiskTTL:  24 * time.Hour,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".holocron"
	}
	return filepath.Join(home, ".holocron")
}

// Load builds the effective configuration: defaults, then the YAML file
// (with environment variables expanded) when path names an existing
// file, then HOLOCRON_* environment overrides, then validation. An
// absent file is skipped, so the default holocron.yaml need not exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values no command could run with.
func (c *Config) Validate() error {
	var errs []string

	if c.BaseURL == "" {
		errs = append(errs, "base_url must not be empty")
	} else if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("base_url %q is not an absolute URL", c.BaseURL))
	}

	if c.Timeout <= 0 {
		errs = append(errs, "timeout must be positive")
	}

	if c.Cache.Enabled {
		if c.Cache.Capacity < 1 {
			errs = append(errs, "cache.capacity must be at least 1")
		}
		if c.Cache.TTL <= 0 {
			errs = append(errs, "cache.ttl must be positive")
		}
		if c.Cache.DiskTTL <= 0 {
			errs = append(errs, "cache.disk_ttl must be positive")
		}
	}

	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be trace, debug, info, warn, or error)", c.Log.Level))
	}

	if c.Chart.Width < 0 {
		errs = append(errs, "chart.width must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// CachePath is the SQLite file backing the persistent cache tier.
func (c *Config) CachePath() string {
	return filepath.Join(c.DataDir, "cache.db")
}

// HistoryPath is the SQLite file backing the search history.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "history.db")
}

// EnsureDataDir creates the data directory if it does not exist.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}
