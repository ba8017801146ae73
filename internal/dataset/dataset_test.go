// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package dataset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/ratingrec/internal/recommend"
)

const sampleDoc = `{
  "items": [{"id": 1, "title": "A"}, {"id": 2, "title": "B"}, {"id": 3, "title": "C"}],
  "users": [
    {"user_id": "U1", "ratings": {"1": 5, "2": 5}},
    {"user_id": "U2", "ratings": {"1": 1, "3": 5}}
  ]
}`

func TestDecode(t *testing.T) {
	t.Parallel()

	items, corpus, err := Decode(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(items) != 3 || items[1].Title != "B" {
		t.Errorf("items = %+v", items)
	}
	if len(corpus) != 2 || corpus[1].Ratings[3] != 5 {
		t.Errorf("corpus = %+v", corpus)
	}
}

func TestDecodeRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"malformed json", `{"items": [`, "decode"},
		{"unknown field", `{"items": [], "users": [], "extra": 1}`, "decode"},
		{"rating out of range", `{"items": [{"id": 1, "title": "A"}], "users": [{"user_id": "u", "ratings": {"1": 9}}]}`, "at most 5"},
		{"zero rating", `{"items": [{"id": 1, "title": "A"}], "users": [{"user_id": "u", "ratings": {"1": 0}}]}`, "at least 1"},
		{"missing title", `{"items": [{"id": 1}], "users": []}`, "title is required"},
		{"missing user id", `{"items": [], "users": [{"ratings": {}}]}`, "user_id is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Decode(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("Decode() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Decode() error = %v, want to contain %q", err, tt.want)
			}
		})
	}
}

func TestWriteRoundTripThroughFile(t *testing.T) {
	t.Parallel()

	items := []recommend.Item{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}
	corpus := []recommend.UserProfile{{UserID: "U1", Ratings: recommend.Ratings{1: 4, 2: 2}}}

	var buf bytes.Buffer
	if err := Write(&buf, items, corpus); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "dataset.json")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	gotItems, gotCorpus, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !reflect.DeepEqual(gotItems, items) || !reflect.DeepEqual(gotCorpus, corpus) {
		t.Errorf("LoadFile() = %+v %+v, want %+v %+v", gotItems, gotCorpus, items, corpus)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dataset.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name      string
		cfg       Config
		wantItems int
		wantUsers int
		wantErr   bool
	}{
		{"synthetic", Config{Source: SourceSynthetic, Users: 10, Items: 20, Seed: 3}, 20, 10, false},
		{"file", Config{Source: SourceFile, Path: path}, 3, 2, false},
		{"missing file", Config{Source: SourceFile, Path: filepath.Join(t.TempDir(), "nope.json")}, 0, 0, true},
		{"unknown source", Config{Source: "s3"}, 0, 0, true},
		{"bad synthetic bounds", Config{Source: SourceSynthetic, Users: 1, Items: 0}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store, err := Load(context.Background(), tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if store.ItemCount() != tt.wantItems || store.UserCount() != tt.wantUsers {
				t.Errorf("counts = %d/%d, want %d/%d", store.ItemCount(), store.UserCount(), tt.wantItems, tt.wantUsers)
			}
		})
	}
}

func TestLoadDuplicateItemIDs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dup.json")
	doc := `{"items": [{"id": 1, "title": "A"}, {"id": 1, "title": "B"}], "users": []}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(context.Background(), Config{Source: SourceFile, Path: path}); err == nil {
		t.Error("Load() with duplicate ids error = nil, want error")
	}
}
