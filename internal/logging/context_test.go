// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestGenerateIDs(t *testing.T) {
	t.Parallel()

	if got := len(GenerateCorrelationID()); got != 8 {
		t.Errorf("len(GenerateCorrelationID()) = %d, want 8", got)
	}
	if got := len(GenerateRequestID()); got != 36 {
		t.Errorf("len(GenerateRequestID()) = %d, want 36", got)
	}
	if GenerateRequestID() == GenerateRequestID() {
		t.Error("expected unique request IDs")
	}
}

func TestContextIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if id := RequestIDFromContext(ctx); id != "" {
		t.Errorf("RequestIDFromContext(empty) = %q, want empty", id)
	}

	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")

	if id := RequestIDFromContext(ctx); id != "req-1" {
		t.Errorf("RequestIDFromContext = %q, want %q", id, "req-1")
	}
	if id := CorrelationIDFromContext(ctx); id != "corr-1" {
		t.Errorf("CorrelationIDFromContext = %q, want %q", id, "corr-1")
	}

	fresh := ContextWithNewCorrelationID(context.Background())
	if CorrelationIDFromContext(fresh) == "" {
		t.Error("expected generated correlation ID")
	}
}

func TestCtxAddsFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-42")
	ctx = ContextWithCorrelationID(ctx, "abcd1234")

	Ctx(ctx).Info().Msg("handled")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-42"`) {
		t.Errorf("output missing request_id: %s", out)
	}
	if !strings.Contains(out, `"correlation_id":"abcd1234"`) {
		t.Errorf("output missing correlation_id: %s", out)
	}
}

func TestSlogHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf)))

	logger.With("service", "http").WithGroup("event").Warn("service restarted", "attempt", 2)

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"service":"http"`, `"event.attempt":2`, "service restarted"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}
