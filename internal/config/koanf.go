// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

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

	"github.com/tomtom215/ratingrec/internal/dataset"
	"github.com/tomtom215/ratingrec/internal/dataset/synthetic"
	"github.com/tomtom215/ratingrec/internal/recommend"
)

// DefaultConfigPaths are searched in order; the first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/ratingrec/config.yaml",
	"/etc/ratingrec/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	engine := recommend.DefaultConfig()
	demo := synthetic.DefaultConfig()

	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Recommend: RecommendConfig{
			Neighbors:     engine.Neighbors,
			Limit:         engine.Limit,
			Policy:        string(engine.Policy),
			Workers:       engine.Workers,
			Timeout:       10 * time.Second,
			StatsInterval: time.Minute,
		},
		Dataset: DatasetConfig{
			Source: dataset.SourceSynthetic,
			Users:  demo.Users,
			Items:  demo.Items,
			Seed:   demo.Seed,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration with precedence ENV > file > defaults and
// validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// HTTP_PORT -> server.port, RECOMMEND_NEIGHBORS -> recommend.neighbors, ...
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths arrive from the environment as comma-separated strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(path, out); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names to koanf paths. Unlisted
// variables are ignored.
var envMappings = map[string]string{
	"http_port":                "server.port",
	"http_host":                "server.host",
	"http_timeout":             "server.timeout",
	"http_shutdown_timeout":    "server.shutdown_timeout",
	"rate_limit_reqs":          "security.rate_limit_reqs",
	"rate_limit_window":        "security.rate_limit_window",
	"disable_rate_limit":       "security.rate_limit_disabled",
	"cors_origins":             "security.cors_origins",
	"recommend_neighbors":      "recommend.neighbors",
	"recommend_limit":          "recommend.limit",
	"recommend_policy":         "recommend.policy",
	"recommend_workers":        "recommend.workers",
	"recommend_timeout":        "recommend.timeout",
	"recommend_stats_interval": "recommend.stats_interval",
	"dataset_source":           "dataset.source",
	"dataset_path":             "dataset.path",
	"dataset_synthetic_users":  "dataset.users",
	"dataset_synthetic_items":  "dataset.items",
	"dataset_synthetic_seed":   "dataset.seed",
	"log_level":                "logging.level",
	"log_format":               "logging.format",
	"log_caller":               "logging.caller",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
