// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ratingrec/internal/dataset"
	"github.com/tomtom215/ratingrec/internal/recommend"
)

func TestParseSelections(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    map[int]int
		wantErr bool
	}{
		{"empty", nil, map[int]int{}, false},
		{"pairs", []string{"1=5", " 3 = 0"}, map[int]int{1: 5, 3: 0}, false},
		{"missing separator", []string{"15"}, nil, true},
		{"non-numeric id", []string{"a=5"}, nil, true},
		{"non-numeric score", []string{"1=five"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSelections(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSelections() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseSelections() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Commands share package-level flag state, so these tests run sequentially.
func TestGenerateThenRecommend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")

	rootCommand.SetArgs([]string{"generate", "--users", "30", "--items", "12", "--seed", "7", "--out", path})
	if err := rootCommand.Execute(); err != nil {
		t.Fatalf("generate error = %v", err)
	}

	items, corpus, err := dataset.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(items) != 12 || len(corpus) != 30 {
		t.Fatalf("dataset has %d items and %d users, want 12 and 30", len(items), len(corpus))
	}

	var out bytes.Buffer
	rootCommand.SetOut(&out)
	rootCommand.SetArgs([]string{"recommend", "--dataset", path, "--limit", "3", "1=5", "2=0"})
	if err := rootCommand.Execute(); err != nil {
		t.Fatalf("recommend error = %v", err)
	}

	var recs []recommend.Recommendation
	if err := json.Unmarshal(out.Bytes(), &recs); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
	if len(recs) > 3 {
		t.Errorf("got %d recommendations, want at most 3", len(recs))
	}
	for _, rec := range recs {
		if rec.Item.ID == 1 {
			t.Error("rated item 1 must not be recommended")
		}
	}
}

func TestRecommendRejectsBadScore(t *testing.T) {
	rootCommand.SetOut(&bytes.Buffer{})
	rootCommand.SetArgs([]string{"recommend", "1=9"})
	if err := rootCommand.Execute(); err == nil {
		t.Error("recommend with score 9 error = nil, want error")
	}
}

func TestOpenOutputStdout(t *testing.T) {
	var buf bytes.Buffer
	w, closeFn, err := openOutput("-", &buf)
	if err != nil {
		t.Fatalf("openOutput() error = %v", err)
	}
	defer closeFn()
	if w != &buf {
		t.Error("openOutput(\"-\") should return the stdout writer")
	}

	if _, _, err := openOutput(filepath.Join(t.TempDir(), "missing", "x.json"), os.Stdout); err == nil {
		t.Error("openOutput() into a missing directory error = nil, want error")
	}
}
