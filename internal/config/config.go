// Package config loads bibletrack settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/bibletrack/internal/puzzle"
	"github.com/abhisek/bibletrack/internal/store"
)

// Config holds the full bibletrack configuration.
type Config struct {
	// DBPath is empty to use the default data location.
	DBPath string `yaml:"db_path"`
	// AssetBaseURL serves reading version files and puzzle images. Empty
	// means offline: book names come from the built-in canon.
	AssetBaseURL   string        `yaml:"asset_base_url"`
	PuzzlePoolSize int           `yaml:"puzzle_pool_size"`
	WriteQueueSize int           `yaml:"write_queue_size"`
	CacheEntries   int           `yaml:"cache_entries"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout"`
	ListenAddr     string        `yaml:"listen_addr"`
	LogLevel       string        `yaml:"log_level"`
}

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	c := &Config{}
	c.defaults()
	return c
}

func (c *Config) defaults() {
	if c.PuzzlePoolSize <= 0 {
		c.PuzzlePoolSize = puzzle.DefaultPoolSize
	}
	if c.WriteQueueSize <= 0 {
		c.WriteQueueSize = store.DefaultWriteQueueSize
	}
	if c.CacheEntries <= 0 {
		c.CacheEntries = 32
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 15 * time.Second
	}
	if c.ListenAddr == "" {
		c.ListenAddr = "127.0.0.1:8417"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/bibletrack/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "bibletrack", "config.yaml"), nil
}

// Load reads a YAML config file over the defaults. When optional is set a
// missing file yields the defaults.
func Load(path string, optional bool) (*Config, error) {
	c := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	c.defaults()
	return c, nil
}

// ApplyEnv overrides fields from BIBLETRACK_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("BIBLETRACK_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("BIBLETRACK_ASSET_URL"); v != "" {
		c.AssetBaseURL = v
	}
	if v := os.Getenv("BIBLETRACK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("BIBLETRACK_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("BIBLETRACK_PUZZLE_POOL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PuzzlePoolSize = n
		}
	}
}

// Validate checks that values are sane.
func (c *Config) Validate() error {
	if c.AssetBaseURL != "" {
		u, err := url.Parse(c.AssetBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("asset_base_url must be an http(s) URL, got %q", c.AssetBaseURL)
		}
	}
	if c.PuzzlePoolSize <= 0 || c.PuzzlePoolSize > 1000 {
		return fmt.Errorf("puzzle_pool_size must be between 1 and 1000")
	}
	if c.WriteQueueSize <= 0 {
		return fmt.Errorf("write_queue_size must be > 0")
	}
	if c.CacheEntries <= 0 {
		return fmt.Errorf("cache_entries must be > 0")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be > 0")
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("unsupported log_level %q", c.LogLevel)
	}
	return nil
}

// Level returns the hclog level for LogLevel.
func (c *Config) Level() hclog.Level {
	return hclog.LevelFromString(c.LogLevel)
}
