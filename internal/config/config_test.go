package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 100, c.PuzzlePoolSize)
	assert.Equal(t, 64, c.WriteQueueSize)
	assert.Equal(t, 15*time.Second, c.FetchTimeout)
	assert.Equal(t, "", c.AssetBaseURL)
	assert.NoError(t, c.Validate())
}

func TestLoadMergesDefaults(t *testing.T) {
	path := writeConfig(t, `
asset_base_url: https://bible.example.org
puzzle_pool_size: 12
fetch_timeout: 3s
log_level: debug
`)
	c, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, "https://bible.example.org", c.AssetBaseURL)
	assert.Equal(t, 12, c.PuzzlePoolSize)
	assert.Equal(t, 3*time.Second, c.FetchTimeout)
	assert.Equal(t, 64, c.WriteQueueSize)
	assert.Equal(t, hclog.Debug, c.Level())
	assert.NoError(t, c.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	c, err := Load(missing, true)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)

	_, err = Load(missing, false)
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "puzzle_pool_size: [1, 2"), false)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("BIBLETRACK_DB", "/tmp/x.db")
	t.Setenv("BIBLETRACK_ASSET_URL", "http://localhost:9000")
	t.Setenv("BIBLETRACK_LOG_LEVEL", "info")
	t.Setenv("BIBLETRACK_ADDR", ":9999")
	t.Setenv("BIBLETRACK_PUZZLE_POOL", "5")

	c := DefaultConfig()
	c.ApplyEnv()
	assert.Equal(t, "/tmp/x.db", c.DBPath)
	assert.Equal(t, "http://localhost:9000", c.AssetBaseURL)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, ":9999", c.ListenAddr)
	assert.Equal(t, 5, c.PuzzlePoolSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad asset url", func(c *Config) { c.AssetBaseURL = "ftp://x" }},
		{"relative asset url", func(c *Config) { c.AssetBaseURL = "/assets" }},
		{"pool too large", func(c *Config) { c.PuzzlePoolSize = 5000 }},
		{"zero queue", func(c *Config) { c.WriteQueueSize = 0 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/cfg/bibletrack/config.yaml", p)
}
