// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package recommend

import (
	"sort"

	"github.com/rs/zerolog"
)

// Aggregator turns neighbor ratings into ranked recommendations.
type Aggregator struct {
	policy AggregationPolicy
	logger zerolog.Logger
}

// NewAggregator returns an aggregator using policy. An unknown policy falls
// back to PolicyWeighted.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAggregator(policy AggregationPolicy, logger zerolog.Logger) *Aggregator {
	if !policy.Valid() {
		policy = PolicyWeighted
	}
	return &Aggregator{policy: policy, logger: logger}
}

// Aggregate collects every neighbor rating of LikeThreshold or more for items
// active has not rated, predicts a score per item, and returns the top n
// resolved against items. Ties are broken by ascending item id. Ids missing
// from the catalog are dropped with a warning after truncation, so the
// result may hold fewer than n entries.
func (a *Aggregator) Aggregate(active Ratings, neighbors []SimilarityResult, items ItemLookup, n int) []Recommendation {
	recs, _ := a.aggregate(active, neighbors, items, n)
	return recs
}

// aggregate also reports how many ids were dropped as unknown.
func (a *Aggregator) aggregate(active Ratings, neighbors []SimilarityResult, items ItemLookup, n int) ([]Recommendation, int) {
	if len(neighbors) == 0 || n <= 0 {
		return nil, 0
	}

	candidates := Accumulate(active, neighbors)
	if len(candidates) == 0 {
		return nil, 0
	}

	type scored struct {
		id    int
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for id, c := range candidates {
		ranked = append(ranked, scored{id: id, score: a.predict(c)})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].id < ranked[j].id
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	recs := make([]Recommendation, 0, len(ranked))
	dropped := 0
	for _, r := range ranked {
		item, ok := items.Item(r.id)
		if !ok {
			dropped++
			a.logger.Warn().
				Int("item_id", r.id).
				Float64("predicted_score", r.score).
				Msg("recommended item missing from catalog, dropped")
			continue
		}
		recs = append(recs, Recommendation{Item: item, PredictedScore: r.score})
	}

	return recs, dropped
}

func (a *Aggregator) predict(c *CandidateScore) float64 {
	if a.policy == PolicySum {
		return c.RatingSum
	}
	return c.WeightedSum / c.WeightTotal
}

// Accumulate gathers the evidence for each item active has not rated, using
// only neighbor ratings of LikeThreshold or more. Every returned candidate
// has a positive WeightTotal.
func Accumulate(active Ratings, neighbors []SimilarityResult) map[int]*CandidateScore {
	candidates := make(map[int]*CandidateScore)
	for _, nb := range neighbors {
		for id, rating := range nb.Profile.Ratings {
			if active.Has(id) || rating < LikeThreshold {
				continue
			}
			c, ok := candidates[id]
			if !ok {
				c = &CandidateScore{ItemID: id}
				candidates[id] = c
			}
			c.WeightedSum += float64(rating) * nb.Score
			c.WeightTotal += nb.Score
			c.RatingSum += float64(rating)
			c.Supporters++
		}
	}
	return candidates
}
