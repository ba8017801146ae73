// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

// Package recommend implements memory-based, user-based collaborative filtering
// over explicit 1-5 star ratings.
//
// # Pipeline
//
// A request flows through three stages, each a plain function over immutable
// inputs:
//
//   - RatingStore: item catalog plus the corpus of historical user profiles
//   - Rank: scores every corpus profile against the active user's ratings
//     (1 / (1 + sum of squared differences over co-rated items)) and keeps
//     the top K
//   - Aggregate: turns the neighbors' ratings of 4 or more into predicted
//     scores for items the active user has not rated, and keeps the top N
//
// Engine wires the stages together and is the only entry point callers need.
//
// # Usage
//
//	store, err := recommend.NewRatingStore(items, corpus)
//	engine, err := recommend.NewEngine(store, recommend.DefaultConfig(), logger)
//
//	recs, err := engine.Recommend(ctx, recommend.Ratings{1: 5, 7: 3})
//
// # Errors
//
// Recommend only fails on malformed input (ErrInvalidRating, ErrInvalidItemID).
// Insufficient input, profiles without overlap, and catalog misses all yield
// empty or shorter results instead of errors.
//
// # Thread Safety
//
// The store is read-only after construction and Recommend snapshots its input,
// so an Engine is safe for concurrent use without locking.
package recommend
