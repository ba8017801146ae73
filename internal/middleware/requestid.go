// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package middleware

import (
	"net/http"

	"github.com/tomtom215/ratingrec/internal/logging"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds IDs accepted from upstream proxies.
const maxRequestIDLen = 128

// RequestID reuses an upstream X-Request-ID or generates one, echoes it in
// the response, and stores it (plus a fresh correlation ID) in the request
// context for logging.Ctx.
func RequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = logging.GenerateRequestID()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := logging.ContextWithRequestID(r.Context(), id)
		ctx = logging.ContextWithNewCorrelationID(ctx)

		next(w, r.WithContext(ctx))
	}
}
