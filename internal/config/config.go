// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

// Package config loads service configuration from defaults, an optional YAML
// file, and environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/ratingrec/internal/dataset"
	"github.com/tomtom215/ratingrec/internal/logging"
	"github.com/tomtom215/ratingrec/internal/recommend"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Recommend RecommendConfig `koanf:"recommend"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds request-shaping settings for the public API.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	// Neighbors is how many similar users contribute (K).
	// Default: 3
	Neighbors int `koanf:"neighbors"`

	// Limit is how many recommendations are returned (N).
	// Default: 5
	Limit int `koanf:"limit"`

	// Policy is the aggregation formula: weighted or sum.
	// Default: weighted
	Policy string `koanf:"policy"`

	// Workers splits similarity scoring across goroutines.
	// Default: 1
	Workers int `koanf:"workers"`

	// Timeout bounds a single HTTP recommendation request.
	// Default: 10s
	Timeout time.Duration `koanf:"timeout"`

	// StatsInterval is how often the engine counters are logged.
	// Default: 1m
	StatsInterval time.Duration `koanf:"stats_interval"`
}

// Engine converts to the engine's own configuration type.
func (r RecommendConfig) Engine() recommend.Config {
	return recommend.Config{
		Neighbors: r.Neighbors,
		Limit:     r.Limit,
		Policy:    recommend.AggregationPolicy(strings.ToLower(r.Policy)),
		Workers:   r.Workers,
	}
}

// DatasetConfig selects where the catalog and corpus come from.
type DatasetConfig struct {
	// Source is synthetic or file.
	// Default: synthetic
	Source string `koanf:"source"`

	// Path is the JSON dataset file, required when Source is file.
	Path string `koanf:"path"`

	// Users, Items and Seed parameterize the synthetic generator.
	Users int   `koanf:"users"`
	Items int   `koanf:"items"`
	Seed  int64 `koanf:"seed"`
}

// Loader converts to the dataset package's configuration type.
func (d DatasetConfig) Loader() dataset.Config {
	return dataset.Config{Source: d.Source, Path: d.Path, Users: d.Users, Items: d.Items, Seed: d.Seed}
}

// LoggingConfig mirrors logging.Config for the file/env layers.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Logger converts to logging.Config.
func (l LoggingConfig) Logger() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}

	if err := c.Recommend.Engine().Validate(); err != nil {
		return fmt.Errorf("recommend.%w", err)
	}
	if c.Recommend.Timeout <= 0 {
		return fmt.Errorf("recommend.timeout must be positive, got %s", c.Recommend.Timeout)
	}
	if c.Recommend.StatsInterval <= 0 {
		return fmt.Errorf("recommend.stats_interval must be positive, got %s", c.Recommend.StatsInterval)
	}

	switch c.Dataset.Source {
	case dataset.SourceSynthetic:
		if c.Dataset.Users < 0 {
			return fmt.Errorf("dataset.users must not be negative, got %d", c.Dataset.Users)
		}
		if c.Dataset.Items <= 0 {
			return fmt.Errorf("dataset.items must be positive, got %d", c.Dataset.Items)
		}
	case dataset.SourceFile:
		if c.Dataset.Path == "" {
			return fmt.Errorf("dataset.path is required when dataset.source is %q", dataset.SourceFile)
		}
	default:
		return fmt.Errorf("dataset.source must be %q or %q, got %q", dataset.SourceSynthetic, dataset.SourceFile, c.Dataset.Source)
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}
	if f := strings.ToLower(c.Logging.Format); f != "json" && f != "console" {
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	return nil
}
