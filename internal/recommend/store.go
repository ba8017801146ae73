// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package recommend

import (
	"fmt"
)

// RatingStore holds the item catalog and the corpus of user profiles.
// It is immutable after construction and safe for concurrent reads.
type RatingStore struct {
	items  []Item
	byID   map[int]Item
	corpus []UserProfile
}

// NewRatingStore copies items and corpus into a new store. It fails on
// duplicate or non-positive item ids and on malformed corpus ratings.
// Corpus ratings may reference ids missing from the catalog; those are
// dropped later during aggregation.
func NewRatingStore(items []Item, corpus []UserProfile) (*RatingStore, error) {
	s := &RatingStore{
		items:  make([]Item, 0, len(items)),
		byID:   make(map[int]Item, len(items)),
		corpus: make([]UserProfile, 0, len(corpus)),
	}

	for _, it := range items {
		if it.ID <= 0 {
			return nil, fmt.Errorf("catalog: %w: %d", ErrInvalidItemID, it.ID)
		}
		if _, dup := s.byID[it.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate item id %d", it.ID)
		}
		s.byID[it.ID] = it
		s.items = append(s.items, it)
	}

	for i, p := range corpus {
		if err := p.Ratings.Validate(); err != nil {
			return nil, fmt.Errorf("corpus profile %d (%q): %w", i, p.UserID, err)
		}
		s.corpus = append(s.corpus, UserProfile{UserID: p.UserID, Ratings: p.Ratings.Clone()})
	}

	return s, nil
}

// AllItems returns the catalog in construction order.
func (s *RatingStore) AllItems() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Corpus returns the corpus profiles in construction order. The profiles'
// rating maps are shared with the store and must not be modified.
func (s *RatingStore) Corpus() []UserProfile {
	out := make([]UserProfile, len(s.corpus))
	copy(out, s.corpus)
	return out
}

// Item looks up a catalog entry by id.
func (s *RatingStore) Item(id int) (Item, bool) {
	it, ok := s.byID[id]
	return it, ok
}

// ItemCount returns the catalog size.
func (s *RatingStore) ItemCount() int { return len(s.items) }

// UserCount returns the corpus size.
func (s *RatingStore) UserCount() int { return len(s.corpus) }
