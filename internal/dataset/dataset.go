// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

// Package dataset builds the rating store from a configured source: the
// reproducible synthetic generator or a JSON document on disk.
package dataset

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ratingrec/internal/dataset/synthetic"
	"github.com/tomtom215/ratingrec/internal/logging"
	"github.com/tomtom215/ratingrec/internal/recommend"
	"github.com/tomtom215/ratingrec/internal/validation"
)

// Source names.
const (
	SourceSynthetic = "synthetic"
	SourceFile      = "file"
)

// Config selects and parameterizes the dataset source.
type Config struct {
	Source string
	Path   string

	Users int
	Items int
	Seed  int64
}

// Document is the on-disk dataset format.
//
//	{"items": [{"id": 1, "title": "Up"}],
//	 "users": [{"user_id": "alice", "ratings": {"1": 5}}]}
type Document struct {
	Items []ItemRecord `json:"items" validate:"dive"`
	Users []UserRecord `json:"users" validate:"dive"`
}

// ItemRecord is one catalog entry.
type ItemRecord struct {
	ID    int    `json:"id" validate:"gt=0"`
	Title string `json:"title" validate:"required,max=512"`
}

// UserRecord is one corpus profile.
type UserRecord struct {
	UserID  string      `json:"user_id" validate:"required"`
	Ratings map[int]int `json:"ratings" validate:"dive,keys,gt=0,endkeys,min=1,max=5"`
}

// Load builds a store from cfg.
//
//nolint:gocritic // hugeParam: Config is read once at startup
func Load(ctx context.Context, cfg Config) (*recommend.RatingStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		items  []recommend.Item
		corpus []recommend.UserProfile
		err    error
	)

	switch cfg.Source {
	case SourceSynthetic, "":
		items, corpus, err = synthetic.Generate(synthetic.Config{Users: cfg.Users, Items: cfg.Items, Seed: cfg.Seed})
		if err != nil {
			return nil, fmt.Errorf("generate synthetic dataset: %w", err)
		}
	case SourceFile:
		items, corpus, err = LoadFile(cfg.Path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Source)
	}

	store, err := recommend.NewRatingStore(items, corpus)
	if err != nil {
		return nil, fmt.Errorf("build rating store: %w", err)
	}

	logging.Ctx(ctx).Info().
		Str("source", cfg.Source).
		Int("items", store.ItemCount()).
		Int("users", store.UserCount()).
		Msg("Dataset loaded")

	return store, nil
}

// LoadFile reads and validates a Document from path.
func LoadFile(path string) ([]recommend.Item, []recommend.UserProfile, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	items, corpus, err := Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return items, corpus, nil
}

// Decode parses and validates a Document.
func Decode(r io.Reader) ([]recommend.Item, []recommend.UserProfile, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("decode: %w", err)
	}
	if verr := validation.ValidateStruct(&doc); verr != nil {
		return nil, nil, fmt.Errorf("validate: %w", verr)
	}

	items := make([]recommend.Item, len(doc.Items))
	for i, it := range doc.Items {
		items[i] = recommend.Item{ID: it.ID, Title: it.Title}
	}
	corpus := make([]recommend.UserProfile, len(doc.Users))
	for i, u := range doc.Users {
		corpus[i] = recommend.UserProfile{UserID: u.UserID, Ratings: recommend.Ratings(u.Ratings)}
	}
	return items, corpus, nil
}

// Write encodes a catalog and corpus as a Document.
func Write(w io.Writer, items []recommend.Item, corpus []recommend.UserProfile) error {
	doc := Document{
		Items: make([]ItemRecord, len(items)),
		Users: make([]UserRecord, len(corpus)),
	}
	for i, it := range items {
		doc.Items[i] = ItemRecord{ID: it.ID, Title: it.Title}
	}
	for i, p := range corpus {
		doc.Users[i] = UserRecord{UserID: p.UserID, Ratings: p.Ratings}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
