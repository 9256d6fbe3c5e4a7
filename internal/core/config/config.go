// Package config handles configuration loading and validation for deckrev.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Limits mirrored from the server so the client never sends a page
// request the server would clamp differently.
const (
	MinPageSize = 1
	MaxPageSize = 200
)

// Config holds the application configuration.
type Config struct {
	Server  ServerConfig `yaml:"server"`
	Review  ReviewConfig `yaml:"review"`
	DataDir string       `yaml:"-"` // set by caller, not from config file
}

// ServerConfig describes the deck platform the client talks to.
type ServerConfig struct {
	// BaseURL is the root of the platform, e.g. "https://deck.example.com".
	BaseURL string `yaml:"base_url"`
	// Token is the bearer token forwarded on every request. It is never
	// validated client-side.
	Token string `yaml:"token"`
	// TimeoutSeconds bounds each HTTP round-trip.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// ReviewConfig tunes the review engine.
type ReviewConfig struct {
	// PageSize is the notes-per-page for commit pagination (1..200).
	PageSize int `yaml:"page_size"`
	// FailsafeSeconds is how long a control may stay busy before the
	// failsafe sweep force-resets it.
	FailsafeSeconds int `yaml:"failsafe_seconds"`
	// SnapshotTTLMinutes is how long a restoration snapshot stays valid.
	SnapshotTTLMinutes int `yaml:"snapshot_ttl_minutes"`
	// OptionalTagPrefixes are deck tag prefixes labeled "optional" in the
	// review view. Display only.
	OptionalTagPrefixes []string `yaml:"optional_tag_prefixes"`
	// HiddenTagGlobs are glob patterns for already-reviewed tags to omit
	// from note cards, e.g. "marked::*". Pending tag proposals are always
	// shown.
	HiddenTagGlobs []string `yaml:"hidden_tag_globs"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			TimeoutSeconds: 30,
		},
		Review: ReviewConfig{
			PageSize:           25,
			FailsafeSeconds:    5,
			SnapshotTTLMinutes: 5,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the
// provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Server.TimeoutSeconds == 0 {
		c.Server.TimeoutSeconds = defaults.Server.TimeoutSeconds
	}
	if c.Review.PageSize == 0 {
		c.Review.PageSize = defaults.Review.PageSize
	}
	if c.Review.FailsafeSeconds == 0 {
		c.Review.FailsafeSeconds = defaults.Review.FailsafeSeconds
	}
	if c.Review.SnapshotTTLMinutes == 0 {
		c.Review.SnapshotTTLMinutes = defaults.Review.SnapshotTTLMinutes
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Server.BaseURL != "" {
		u, err := url.Parse(c.Server.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("server.base_url %q is not an absolute URL", c.Server.BaseURL)
		}
	}

	if c.Review.PageSize < MinPageSize || c.Review.PageSize > MaxPageSize {
		return fmt.Errorf("review.page_size must be between %d and %d", MinPageSize, MaxPageSize)
	}

	if c.Review.FailsafeSeconds < 1 {
		return fmt.Errorf("review.failsafe_seconds must be at least 1")
	}

	if c.Review.SnapshotTTLMinutes < 1 {
		return fmt.Errorf("review.snapshot_ttl_minutes must be at least 1")
	}

	return nil
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

// Failsafe returns the busy-control failsafe window as a duration.
func (c *Config) Failsafe() time.Duration {
	return time.Duration(c.Review.FailsafeSeconds) * time.Second
}

// SnapshotTTL returns the restoration snapshot expiry as a duration.
func (c *Config) SnapshotTTL() time.Duration {
	return time.Duration(c.Review.SnapshotTTLMinutes) * time.Minute
}
