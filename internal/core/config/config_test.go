package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Server.TimeoutSeconds)
	assert.Equal(t, 25, cfg.Review.PageSize)
	assert.Equal(t, 5, cfg.Review.FailsafeSeconds)
	assert.Equal(t, 5*time.Second, cfg.Failsafe())
	assert.Equal(t, 5*time.Minute, cfg.SnapshotTTL())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yml", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Review.PageSize)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `
server:
  base_url: https://deck.example.com
  token: secret
  timeout_seconds: 10
review:
  page_size: 50
  optional_tag_prefixes:
    - "AnkiHub::"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "https://deck.example.com", cfg.Server.BaseURL)
	assert.Equal(t, "secret", cfg.Server.Token)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, 50, cfg.Review.PageSize)
	assert.Equal(t, []string{"AnkiHub::"}, cfg.Review.OptionalTagPrefixes)

	// Unset values still default.
	assert.Equal(t, 5, cfg.Review.FailsafeSeconds)
	assert.Equal(t, dir, cfg.DataDir)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0o644))

	_, err := Load(path, dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, true},
		{"relative base url", func(c *Config) { c.Server.BaseURL = "deck.example.com" }, true},
		{"absolute base url", func(c *Config) { c.Server.BaseURL = "https://deck.example.com" }, false},
		{"page size too small", func(c *Config) { c.Review.PageSize = 0 }, true},
		{"page size too large", func(c *Config) { c.Review.PageSize = 201 }, true},
		{"page size at limit", func(c *Config) { c.Review.PageSize = 200 }, false},
		{"zero failsafe", func(c *Config) { c.Review.FailsafeSeconds = 0 }, true},
		{"zero snapshot ttl", func(c *Config) { c.Review.SnapshotTTLMinutes = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = "/tmp/deckrev-test"
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "Validate() error = %v, wantErr %v", err, tt.wantErr)
		})
	}
}
