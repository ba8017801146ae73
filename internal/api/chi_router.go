// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/ratingrec/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	metrics       http.Handler
}

// NewRouter creates a router. A nil metrics handler serves the default
// Prometheus registry.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, metricsHandler http.Handler) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
		metrics:       metricsHandler,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Applied to ALL routes in order
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).MethodNotAllowed()
	})

	// Probes are not rate limited.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/items", router.handler.Items)
		r.Post("/recommendations", router.handler.Recommendations)
		r.Post("/recommendations/explain", router.handler.Explain)
	})

	r.Handle("/metrics", router.metrics)

	return r
}
