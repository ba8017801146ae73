// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

// Package main is the entry point for the ratingrec server.
//
// ratingrec answers "what should I look at next?" from a handful of 1-5 star
// ratings. It finds the corpus users whose ratings are closest to the
// caller's and suggests the items those neighbors liked.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, config.yaml, then environment (koanf v2)
//  2. Dataset: synthetic demo corpus or a JSON dataset file
//  3. Engine: similarity ranking and aggregation over the loaded store
//  4. Metrics: engine counters and dataset gauges on the default registry
//  5. HTTP Server: chi router with CORS, rate limiting and Prometheus metrics
//  6. Supervisor tree: HTTP server and stats reporter under suture
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor context. The HTTP server stops
// accepting connections and drains in-flight requests for
// server.shutdown_timeout.
//
// # Example Usage
//
//	HTTP_PORT=8080 RECOMMEND_NEIGHBORS=3 ./ratingrec
//
//	curl -s -XPOST localhost:8080/api/v1/recommendations \
//	  -d '{"ratings":{"1":5,"4":2}}'
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tomtom215/ratingrec/internal/api"
	"github.com/tomtom215/ratingrec/internal/config"
	"github.com/tomtom215/ratingrec/internal/dataset"
	"github.com/tomtom215/ratingrec/internal/logging"
	"github.com/tomtom215/ratingrec/internal/metrics"
	"github.com/tomtom215/ratingrec/internal/recommend"
	"github.com/tomtom215/ratingrec/internal/supervisor"
	"github.com/tomtom215/ratingrec/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Default logger, config not yet available
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.Logger())

	logging.Info().
		Str("dataset_source", cfg.Dataset.Source).
		Int("neighbors", cfg.Recommend.Neighbors).
		Int("limit", cfg.Recommend.Limit).
		Str("policy", cfg.Recommend.Policy).
		Msg("Starting ratingrec")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := dataset.Load(ctx, cfg.Dataset.Loader())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dataset")
	}

	engine, err := recommend.NewEngine(store, cfg.Recommend.Engine(), logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	if err := metrics.RegisterEngineCollectors(prometheus.DefaultRegisterer, engine); err != nil {
		logging.Fatal().Err(err).Msg("Failed to register engine metrics")
	}

	handler := api.NewHandler(engine, cfg.Recommend.Timeout)
	chiMW := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	router := api.NewRouter(handler, chiMW, nil)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// sutureslog needs slog; route it through zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddEngineService(services.NewStatsReporter(engine, cfg.Recommend.StatsInterval, logging.WithComponent("stats")))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	errCh := tree.ServeBackground(ctx)

	// The supervisor sends exactly one result and never closes errCh.
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish")
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("ratingrec stopped")
	if len(unstopped) > 0 {
		stop()
		os.Exit(1)
	}
}
