// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, first hit wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/wagarakan/config.yaml",
	"/etc/wagarakan/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with every default applied. Scoring weights
// follow the original recommender: mood counts slightly more than gender and
// formality, contrast the least.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8543,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Paths: PathsConfig{
			DataFile:       "data/patterns.json",
			ImageIndexFile: "data/images.json",
			PatternsDir:    "assets/patterns",
			BackgroundsDir: "assets/backgrounds",
			Placeholder:    "hero_placeholder.png",
		},
		Upload: UploadConfig{
			MaxBytes:       10 << 20, // 10MB
			AllowOverwrite: false,
		},
		Recommend: RecommendConfig{
			TopK:            3,
			CacheTTL:        time.Minute,
			GenderWeight:    1.0,
			MoodWeight:      1.1,
			SeasonWeight:    0.9,
			FormalityWeight: 1.0,
			MotifWeight:     0.8,
			ContrastWeight:  0.6,
		},
		Security: SecurityConfig{
			RateLimitReqs:   300,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration with layered sources:
//  1. Defaults: built-in values
//  2. Config file: optional YAML (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables: highest priority
//
// Environment variables map to dotted paths, e.g. SERVER_PORT ->
// server.port, PATHS_DATA_FILE -> paths.data_file.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches CONFIG_PATH first, then the default paths.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices when
// supplied through environment variables.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated strings to slices for known
// slice fields. Env vars arrive as plain strings; YAML values are already
// slices and are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("set %s: %w", path, err)
			}
		}
	}
	return nil
}

// configSections are the recognized top-level sections. Only environment
// variables whose first token names a section are mapped; everything else
// (PATH, HOME, ...) is ignored.
var configSections = map[string]bool{
	"server":    true,
	"paths":     true,
	"upload":    true,
	"recommend": true,
	"security":  true,
	"logging":   true,
}

// envTransformFunc maps environment variable names to koanf config paths:
//
//	SERVER_PORT              -> server.port
//	PATHS_DATA_FILE          -> paths.data_file
//	RECOMMEND_MOOD_WEIGHT    -> recommend.mood_weight
//	SECURITY_CORS_ORIGINS    -> security.cors_origins
//
// The first underscore separates section from key; remaining underscores
// stay part of the key name.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	section, rest, found := strings.Cut(key, "_")
	if !found || rest == "" || !configSections[section] {
		return ""
	}
	return section + "." + rest
}
