// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Note: this package imports no other internal packages. Metrics and
// transport read Engine.Stats instead of being called from here.

// Engine runs the store -> rank -> aggregate pipeline. It holds no
// per-request state and is safe for concurrent use.
type Engine struct {
	store      *RatingStore
	config     Config
	aggregator *Aggregator
	logger     zerolog.Logger

	requests       atomic.Int64
	emptyResults   atomic.Int64
	invalidInputs  atomic.Int64
	integrityDrops atomic.Int64
}

// Stats is a point-in-time copy of the engine counters.
type Stats struct {
	Requests       int64 `json:"requests"`
	EmptyResults   int64 `json:"empty_results"`
	InvalidInputs  int64 `json:"invalid_inputs"`
	IntegrityDrops int64 `json:"integrity_drops"`
}

// NewEngine validates cfg and binds it to store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(store *RatingStore, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if store == nil {
		return nil, errors.New("rating store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger = logger.With().Str("component", "recommend").Logger()
	return &Engine{
		store:      store,
		config:     cfg,
		aggregator: NewAggregator(cfg.Policy, logger),
		logger:     logger,
	}, nil
}

// Recommend returns up to Config.Limit items the active user has not rated,
// best first. Only malformed ratings produce an error; every other shortfall
// (no ratings, no overlapping neighbors, no liked unseen items) yields an
// empty slice.
func (e *Engine) Recommend(ctx context.Context, ratings Ratings) ([]Recommendation, error) {
	exp, err := e.run(ctx, ratings)
	if err != nil {
		return nil, err
	}
	return exp.Recommendations, nil
}

// Explain is Recommend plus the neighbors that contributed.
func (e *Engine) Explain(ctx context.Context, ratings Ratings) (*Explanation, error) {
	return e.run(ctx, ratings)
}

func (e *Engine) run(ctx context.Context, ratings Ratings) (*Explanation, error) {
	start := time.Now()
	e.requests.Add(1)

	if err := ratings.Validate(); err != nil {
		e.invalidInputs.Add(1)
		return nil, err
	}

	// Snapshot so concurrent edits by the caller cannot leak in.
	active := ratings.Clone()
	if len(active) == 0 {
		e.emptyResults.Add(1)
		return &Explanation{Neighbors: []Neighbor{}, Recommendations: []Recommendation{}}, nil
	}

	neighbors, err := rankParallel(ctx, active, e.store.corpus, e.config.Neighbors, e.config.Workers)
	if err != nil {
		return nil, fmt.Errorf("rank corpus: %w", err)
	}

	recs, dropped := e.aggregator.aggregate(active, neighbors, e.store, e.config.Limit)
	if dropped > 0 {
		e.integrityDrops.Add(int64(dropped))
	}
	if recs == nil {
		recs = []Recommendation{}
	}
	if len(recs) == 0 {
		e.emptyResults.Add(1)
	}

	e.logger.Debug().
		Int("rated", len(active)).
		Int("neighbors", len(neighbors)).
		Int("returned", len(recs)).
		Int("dropped", dropped).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return &Explanation{Neighbors: describe(active, neighbors), Recommendations: recs}, nil
}

func describe(active Ratings, neighbors []SimilarityResult) []Neighbor {
	out := make([]Neighbor, 0, len(neighbors))
	for _, nb := range neighbors {
		_, overlap, _ := Similarity(active, nb.Profile.Ratings)
		out = append(out, Neighbor{UserID: nb.Profile.UserID, Similarity: nb.Score, Overlap: overlap})
	}
	return out
}

// Store returns the backing rating store.
func (e *Engine) Store() *RatingStore { return e.store }

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.config }

// Stats returns the current counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:       e.requests.Load(),
		EmptyResults:   e.emptyResults.Load(),
		InvalidInputs:  e.invalidInputs.Load(),
		IntegrityDrops: e.integrityDrops.Load(),
	}
}
