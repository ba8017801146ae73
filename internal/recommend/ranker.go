// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package recommend

import (
	"context"
	"sort"
	"sync"
)

// Similarity scores two rating vectors over their co-rated items:
//
//	sim = 1 / (1 + sum_i (a[i] - b[i])^2)
//
// ok is false when the vectors share no item; such pairs have no similarity.
// The distance is not normalized by overlap size, so one perfect co-rating
// ties with many.
func Similarity(a, b Ratings) (sim float64, overlap int, ok bool) {
	// Iterate over the smaller map.
	if len(b) < len(a) {
		a, b = b, a
	}

	var total float64
	for id, ra := range a {
		rb, shared := b[id]
		if !shared {
			continue
		}
		d := float64(ra - rb)
		total += d * d
		overlap++
	}

	if overlap == 0 {
		return 0, 0, false
	}
	return 1 / (1 + total), overlap, true
}

// Rank scores every corpus profile against active and returns the k most
// similar, best first. Profiles without co-rated items are skipped. Equal
// scores keep corpus order.
func Rank(active Ratings, corpus []UserProfile, k int) []SimilarityResult {
	results, _ := rankParallel(context.Background(), active, corpus, k, 1)
	return results
}

// rankParallel is Rank with the corpus split into contiguous chunks scored
// by up to workers goroutines. Each score lands at its corpus index, so
// the outcome is identical to a sequential pass.
func rankParallel(ctx context.Context, active Ratings, corpus []UserProfile, k, workers int) ([]SimilarityResult, error) {
	if len(active) == 0 || len(corpus) == 0 || k <= 0 {
		return nil, nil
	}

	type slot struct {
		score float64
		ok    bool
	}
	slots := make([]slot, len(corpus))

	score := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if i%256 == 0 && ctx.Err() != nil {
				return
			}
			sim, _, ok := Similarity(active, corpus[i].Ratings)
			slots[i] = slot{score: sim, ok: ok}
		}
	}

	if workers <= 1 || len(corpus) < 2*workers {
		score(0, len(corpus))
	} else {
		var wg sync.WaitGroup
		chunkSize := (len(corpus) + workers - 1) / workers

		for w := 0; w < workers; w++ {
			start := w * chunkSize
			end := start + chunkSize
			if end > len(corpus) {
				end = len(corpus)
			}
			if start >= end {
				break
			}

			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				score(lo, hi)
			}(start, end)
		}
		wg.Wait()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]SimilarityResult, 0, len(corpus))
	for i, s := range slots {
		if s.ok {
			results = append(results, SimilarityResult{Profile: corpus[i], Score: s.score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}
