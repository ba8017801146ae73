// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package recommend

import (
	"fmt"
)

// AggregationPolicy selects how neighbor evidence becomes a predicted score.
type AggregationPolicy string

const (
	// PolicyWeighted predicts sum(rating*similarity) / sum(similarity).
	// Scores stay on the 1-5 rating scale.
	PolicyWeighted AggregationPolicy = "weighted"

	// PolicySum predicts the plain sum of qualifying neighbor ratings.
	// Items liked by more neighbors rank higher; similarity only selects neighbors.
	PolicySum AggregationPolicy = "sum"
)

// Valid reports whether p is a known policy.
func (p AggregationPolicy) Valid() bool {
	return p == PolicyWeighted || p == PolicySum
}

// Config tunes the recommendation pipeline.
type Config struct {
	// Neighbors is the number of most similar corpus users kept (K).
	// Default: 3.
	Neighbors int `json:"neighbors"`

	// Limit is the maximum number of recommendations returned (N).
	// Default: 5.
	Limit int `json:"limit"`

	// Policy selects the aggregation formula.
	// Default: weighted.
	Policy AggregationPolicy `json:"policy"`

	// Workers is the number of goroutines scoring corpus chunks.
	// 1 scores sequentially. Default: 1.
	Workers int `json:"workers"`
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Neighbors: 3,
		Limit:     5,
		Policy:    PolicyWeighted,
		Workers:   1,
	}
}

// Validate checks that all values are usable.
//
//nolint:gocritic // hugeParam: value receiver keeps Config immutable
func (c Config) Validate() error {
	if c.Neighbors <= 0 {
		return fmt.Errorf("neighbors must be positive, got %d", c.Neighbors)
	}
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	if !c.Policy.Valid() {
		return fmt.Errorf("policy must be %q or %q, got %q", PolicyWeighted, PolicySum, c.Policy)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}
