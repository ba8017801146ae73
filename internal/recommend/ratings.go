// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package recommend

import (
	"errors"
	"fmt"
	"sort"
)

// Rating bounds. There is no "unrated" score: an unrated item has no entry.
const (
	MinRating = 1
	MaxRating = 5

	// LikeThreshold is the lowest neighbor rating that counts as evidence.
	LikeThreshold = 4

	// NoSelection is the value a rating picker reports when nothing is chosen.
	NoSelection = 0
)

var (
	// ErrInvalidRating is returned for a score outside [MinRating, MaxRating].
	ErrInvalidRating = errors.New("rating out of range")

	// ErrInvalidItemID is returned for a non-positive item id.
	ErrInvalidItemID = errors.New("invalid item id")
)

// Ratings maps item id to a score in [MinRating, MaxRating].
type Ratings map[int]int

// Validate reports the first malformed entry, in ascending item id order.
func (r Ratings) Validate() error {
	for _, id := range r.ItemIDs() {
		if err := checkRating(id, r[id]); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns an independent copy. A nil receiver yields an empty map.
func (r Ratings) Clone() Ratings {
	out := make(Ratings, len(r))
	for id, score := range r {
		out[id] = score
	}
	return out
}

// Set validates and stores a score.
func (r Ratings) Set(itemID, score int) error {
	if err := checkRating(itemID, score); err != nil {
		return err
	}
	r[itemID] = score
	return nil
}

// Has reports whether itemID has been rated.
func (r Ratings) Has(itemID int) bool {
	_, ok := r[itemID]
	return ok
}

// ItemIDs returns the rated item ids in ascending order.
func (r Ratings) ItemIDs() []int {
	ids := make([]int, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// FromSelections converts raw picker values to Ratings. Entries holding
// NoSelection are skipped rather than stored.
func FromSelections(selections map[int]int) (Ratings, error) {
	out := make(Ratings, len(selections))
	for id, score := range selections {
		if score == NoSelection {
			continue
		}
		if err := out.Set(id, score); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func checkRating(itemID, score int) error {
	if itemID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidItemID, itemID)
	}
	if score < MinRating || score > MaxRating {
		return fmt.Errorf("%w: item %d has score %d, want %d-%d", ErrInvalidRating, itemID, score, MinRating, MaxRating)
	}
	return nil
}
