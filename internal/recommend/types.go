// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package recommend

// Item is a recommendable entry in the catalog.
type Item struct {
	// ID is unique and stable for the lifetime of the catalog. Always positive.
	ID int `json:"id" validate:"gt=0"`

	// Title is the display name.
	Title string `json:"title" validate:"required"`
}

// UserProfile is one corpus user's rating history.
type UserProfile struct {
	// UserID identifies the profile in logs and explanations.
	UserID string `json:"user_id"`

	// Ratings is the user's sparse rating vector.
	Ratings Ratings `json:"ratings"`
}

// SimilarityResult pairs a corpus profile with its similarity to the active user.
// Score is in (0, 1] and only exists when the two share at least one rated item.
type SimilarityResult struct {
	Profile UserProfile
	Score   float64
}

// CandidateScore accumulates neighbor evidence for one unrated item.
type CandidateScore struct {
	ItemID      int
	WeightedSum float64
	WeightTotal float64
	RatingSum   float64
	Supporters  int
}

// Recommendation is a catalog item with its predicted score.
type Recommendation struct {
	Item           Item    `json:"item"`
	PredictedScore float64 `json:"predicted_score"`
}

// Neighbor describes one selected neighbor for explanations.
type Neighbor struct {
	UserID     string  `json:"user_id"`
	Similarity float64 `json:"similarity"`
	Overlap    int     `json:"overlap"`
}

// Explanation is a recommendation result plus the neighbors that produced it.
type Explanation struct {
	Neighbors       []Neighbor       `json:"neighbors"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ItemLookup resolves item ids against the catalog.
type ItemLookup interface {
	Item(id int) (Item, bool)
}
