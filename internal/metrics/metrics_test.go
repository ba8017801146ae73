// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package metrics

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/ratingrec/internal/recommend"
)

func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
	}{
		{"list items", "GET", "/api/v1/items", "200"},
		{"recommend", "POST", "/api/v1/recommendations", "200"},
		{"bad body", "POST", "/api/v1/recommendations", "400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, 5*time.Millisecond)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after != before+1 {
				t.Errorf("api_requests_total = %v, want %v", after, before+1)
			}
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		outcome  string
		rated    int
		returned int
	}{
		{OutcomeOK, 3, 5},
		{OutcomeEmpty, 0, 0},
		{OutcomeInvalid, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.outcome, func(t *testing.T) {
			before := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.outcome))
			RecordRecommendation(tt.outcome, tt.rated, tt.returned, time.Millisecond)
			if got := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.outcome)); got != before+1 {
				t.Errorf("recommend_requests_total{outcome=%q} = %v, want %v", tt.outcome, got, before+1)
			}
		})
	}
}

func TestRegisterEngineCollectors(t *testing.T) {
	store, err := recommend.NewRatingStore(
		[]recommend.Item{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}},
		[]recommend.UserProfile{{UserID: "u1", Ratings: recommend.Ratings{1: 5, 2: 4}}},
	)
	if err != nil {
		t.Fatalf("NewRatingStore() error = %v", err)
	}
	engine, err := recommend.NewEngine(store, recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	reg := prometheus.NewRegistry()
	if err := RegisterEngineCollectors(reg, engine); err != nil {
		t.Fatalf("RegisterEngineCollectors() error = %v", err)
	}

	_, _ = engine.Recommend(context.Background(), recommend.Ratings{1: 5})
	_, _ = engine.Recommend(context.Background(), recommend.Ratings{})
	_, _ = engine.Recommend(context.Background(), recommend.Ratings{1: 9})

	expected := `
# HELP recommend_engine_requests_total Requests seen by the engine, including rejected input
# TYPE recommend_engine_requests_total counter
recommend_engine_requests_total 3
# HELP recommend_engine_empty_results_total Requests that produced no recommendations
# TYPE recommend_engine_empty_results_total counter
recommend_engine_empty_results_total 1
# HELP recommend_engine_invalid_inputs_total Requests rejected for malformed ratings
# TYPE recommend_engine_invalid_inputs_total counter
recommend_engine_invalid_inputs_total 1
# HELP recommend_corpus_users Number of user profiles in the corpus
# TYPE recommend_corpus_users gauge
recommend_corpus_users 1
# HELP recommend_catalog_items Number of items in the catalog
# TYPE recommend_catalog_items gauge
recommend_catalog_items 2
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"recommend_engine_requests_total",
		"recommend_engine_empty_results_total",
		"recommend_engine_invalid_inputs_total",
		"recommend_corpus_users",
		"recommend_catalog_items",
	)
	if err != nil {
		t.Errorf("GatherAndCompare() error = %v", err)
	}

	if err := RegisterEngineCollectors(reg, engine); err == nil {
		t.Error("second registration error = nil, want AlreadyRegisteredError")
	}
}
