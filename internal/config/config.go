// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

// Package config loads and validates the application configuration using
// Koanf v2 with layered sources: built-in defaults, an optional YAML file,
// and environment variables (highest priority).
package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config is the root configuration for the Wagarakan server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Paths     PathsConfig     `koanf:"paths"`
	Upload    UploadConfig    `koanf:"upload"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// PathsConfig locates the data files and image directories.
type PathsConfig struct {
	// DataFile is the JSON pattern catalog, read at startup and rewritten
	// on every mutation.
	DataFile string `koanf:"data_file"`

	// ImageIndexFile maps pattern names to linked image paths.
	ImageIndexFile string `koanf:"image_index_file"`

	// PatternsDir holds pattern images: gallery source, fuzzy-match
	// corpus, and upload destination.
	PatternsDir string `koanf:"patterns_dir"`

	// BackgroundsDir holds hero/background imagery.
	BackgroundsDir string `koanf:"backgrounds_dir"`

	// Placeholder is the image returned when every resolution step fails.
	Placeholder string `koanf:"placeholder"`
}

// UploadConfig bounds image uploads.
type UploadConfig struct {
	// MaxBytes caps a single uploaded file.
	MaxBytes int64 `koanf:"max_bytes"`

	// AllowOverwrite permits replacing an existing file of the same name.
	AllowOverwrite bool `koanf:"allow_overwrite"`
}

// RecommendConfig tunes the matcher/ranker.
type RecommendConfig struct {
	// TopK is the default number of recommendations returned.
	TopK int `koanf:"top_k"`

	// CacheTTL bounds how long a recommendation response may be served from
	// cache. Zero disables caching.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// Weights per query dimension. A matched dimension contributes its
	// weight to the record's score.
	GenderWeight    float64 `koanf:"gender_weight"`
	MoodWeight      float64 `koanf:"mood_weight"`
	SeasonWeight    float64 `koanf:"season_weight"`
	FormalityWeight float64 `koanf:"formality_weight"`
	MotifWeight     float64 `koanf:"motif_weight"`
	ContrastWeight  float64 `koanf:"contrast_weight"`
}

// SecurityConfig holds the HTTP hardening knobs. Wagarakan is a single-user
// application, so there is no authentication layer; rate limiting and CORS
// still apply.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for values that would prevent startup.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range (1-65535)", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Paths.DataFile == "" {
		return fmt.Errorf("paths.data_file must not be empty")
	}
	if c.Paths.PatternsDir == "" {
		return fmt.Errorf("paths.patterns_dir must not be empty")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive, got %d", c.Upload.MaxBytes)
	}
	if c.Recommend.TopK < 1 {
		return fmt.Errorf("recommend.top_k must be at least 1, got %d", c.Recommend.TopK)
	}
	if c.Recommend.CacheTTL < 0 {
		return fmt.Errorf("recommend.cache_ttl must not be negative, got %s", c.Recommend.CacheTTL)
	}
	for name, w := range map[string]float64{
		"gender_weight":    c.Recommend.GenderWeight,
		"mood_weight":      c.Recommend.MoodWeight,
		"season_weight":    c.Recommend.SeasonWeight,
		"formality_weight": c.Recommend.FormalityWeight,
		"motif_weight":     c.Recommend.MotifWeight,
		"contrast_weight":  c.Recommend.ContrastWeight,
	} {
		if w < 0 {
			return fmt.Errorf("recommend.%s must not be negative, got %g", name, w)
		}
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_requests must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}
	return nil
}

// PlaceholderPath returns the placeholder image path, resolved against the
// backgrounds directory when relative.
func (c *Config) PlaceholderPath() string {
	if c.Paths.Placeholder == "" || filepath.IsAbs(c.Paths.Placeholder) {
		return c.Paths.Placeholder
	}
	return filepath.Join(c.Paths.BackgroundsDir, c.Paths.Placeholder)
}
