// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

// Package synthetic generates a reproducible demo catalog and rating corpus.
package synthetic

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/jaswdr/faker"

	"github.com/tomtom215/ratingrec/internal/recommend"
)

// Titles is the built-in movie catalog. Catalogs larger than this are padded
// with generated titles.
var Titles = []string{
	"The Matrix", "The Lord of the Rings", "Pulp Fiction", "Interstellar", "Titanic",
	"The Godfather", "The Shawshank Redemption", "Inception", "Forrest Gump", "Parasite",
	"Star Wars", "V for Vendetta", "La La Land", "Joker", "Fight Club",
	"Gladiator", "Up", "Toy Story", "Spider-Man", "Blade Runner",
}

// MinRatingsPerUser is the smallest number of items each synthetic user rates.
const MinRatingsPerUser = 5

// Config controls generation.
type Config struct {
	// Users is the number of corpus profiles. Default: 50.
	Users int

	// Items is the catalog size. Default: len(Titles).
	Items int

	// Seed makes the output reproducible. Zero selects a fixed default.
	Seed int64
}

// DefaultConfig mirrors the demo dataset: 50 users over 20 movies.
func DefaultConfig() Config {
	return Config{Users: 50, Items: len(Titles), Seed: 42}
}

// Validate checks the generation bounds.
func (c Config) Validate() error {
	if c.Users < 0 {
		return fmt.Errorf("users must not be negative, got %d", c.Users)
	}
	if c.Items <= 0 {
		return fmt.Errorf("items must be positive, got %d", c.Items)
	}
	return nil
}

// Generate returns a catalog with ids 1..Items and a corpus of users named
// user_1..user_N. Each user rates between MinRatingsPerUser and
// MinRatingsPerUser+Items/2-1 distinct items (capped at the catalog size)
// with uniform scores in 1..5.
func Generate(cfg Config) ([]recommend.Item, []recommend.UserProfile, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // demo data, not security sensitive
	items := catalog(cfg.Items, seed)

	corpus := make([]recommend.UserProfile, 0, cfg.Users)
	for u := 1; u <= cfg.Users; u++ {
		n := MinRatingsPerUser
		if spread := cfg.Items / 2; spread > 0 {
			n += rng.Intn(spread)
		}
		if n > cfg.Items {
			n = cfg.Items
		}

		ratings := make(recommend.Ratings, n)
		for _, idx := range rng.Perm(cfg.Items)[:n] {
			ratings[items[idx].ID] = recommend.MinRating + rng.Intn(recommend.MaxRating)
		}
		corpus = append(corpus, recommend.UserProfile{
			UserID:  fmt.Sprintf("user_%d", u),
			Ratings: ratings,
		})
	}

	return items, corpus, nil
}

func catalog(size int, seed int64) []recommend.Item {
	items := make([]recommend.Item, 0, size)
	seen := make(map[string]struct{}, size)
	for i := 0; i < size && i < len(Titles); i++ {
		items = append(items, recommend.Item{ID: i + 1, Title: Titles[i]})
		seen[Titles[i]] = struct{}{}
	}
	if size <= len(Titles) {
		return items
	}

	fake := faker.NewWithSeed(rand.NewSource(seed)) //nolint:gosec // demo data
	for len(items) < size {
		title := titleCase(fake.Lorem().Words(2))
		if _, dup := seen[title]; dup {
			title = fmt.Sprintf("%s %d", title, len(items)+1)
		}
		seen[title] = struct{}{}
		items = append(items, recommend.Item{ID: len(items) + 1, Title: title})
	}
	return items
}

func titleCase(words []string) string {
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
