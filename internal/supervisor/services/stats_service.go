// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/ratingrec/internal/recommend"
)

// StatsSource is the engine surface the reporter reads.
type StatsSource interface {
	Stats() recommend.Stats
}

// StatsReporter periodically logs the engine counters. Intervals with no
// new requests are skipped.
type StatsReporter struct {
	source   StatsSource
	interval time.Duration
	logger   zerolog.Logger
	name     string
	last     recommend.Stats
}

// NewStatsReporter creates a reporter. A non-positive interval means one minute.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStatsReporter(source StatsSource, interval time.Duration, logger zerolog.Logger) *StatsReporter {
	if interval <= 0 {
		interval = time.Minute
	}
	return &StatsReporter{
		source:   source,
		interval: interval,
		logger:   logger.With().Str("service", "stats-reporter").Logger(),
		name:     "stats-reporter",
	}
}

// Serve implements suture.Service.
func (s *StatsReporter) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.interval).Msg("stats reporter starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.report()
			return ctx.Err()
		case <-ticker.C:
			s.report()
		}
	}
}

// report logs the delta since the previous report and returns whether
// anything was written.
func (s *StatsReporter) report() bool {
	now := s.source.Stats()
	if now.Requests == s.last.Requests {
		return false
	}

	s.logger.Info().
		Int64("requests", now.Requests-s.last.Requests).
		Int64("empty_results", now.EmptyResults-s.last.EmptyResults).
		Int64("invalid_inputs", now.InvalidInputs-s.last.InvalidInputs).
		Int64("integrity_drops", now.IntegrityDrops-s.last.IntegrityDrops).
		Int64("requests_total", now.Requests).
		Msg("engine stats")

	s.last = now
	return true
}

// String names the service in supervisor events.
func (s *StatsReporter) String() string {
	return s.name
}
