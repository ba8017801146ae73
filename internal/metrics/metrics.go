// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

// Package metrics defines the Prometheus instrumentation for the HTTP API and
// the recommendation engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/ratingrec/internal/recommend"
)

// Recommendation outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"}, // ok, empty, invalid, error
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time spent computing recommendations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	RecommendResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_results",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
	)

	RecommendRatedItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_rated_items",
			Help:    "Number of ratings supplied per request",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one engine call.
func RecordRecommendation(outcome string, rated, returned int, duration time.Duration) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
	RecommendRatedItems.Observe(float64(rated))
	if outcome == OutcomeOK || outcome == OutcomeEmpty {
		RecommendResults.Observe(float64(returned))
	}
}

// EngineSource is what the engine collectors read from.
type EngineSource interface {
	Stats() recommend.Stats
	Store() *recommend.RatingStore
}

// RegisterEngineCollectors exposes engine counters and dataset size on reg.
// Values are read at scrape time.
func RegisterEngineCollectors(reg prometheus.Registerer, src EngineSource) error {
	collectors := []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "recommend_engine_requests_total",
			Help: "Requests seen by the engine, including rejected input",
		}, func() float64 { return float64(src.Stats().Requests) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "recommend_engine_empty_results_total",
			Help: "Requests that produced no recommendations",
		}, func() float64 { return float64(src.Stats().EmptyResults) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "recommend_engine_invalid_inputs_total",
			Help: "Requests rejected for malformed ratings",
		}, func() float64 { return float64(src.Stats().InvalidInputs) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "recommend_integrity_drops_total",
			Help: "Recommended item ids missing from the catalog",
		}, func() float64 { return float64(src.Stats().IntegrityDrops) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "recommend_corpus_users",
			Help: "Number of user profiles in the corpus",
		}, func() float64 { return float64(src.Store().UserCount()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "recommend_catalog_items",
			Help: "Number of items in the catalog",
		}, func() float64 { return float64(src.Store().ItemCount()) }),
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
