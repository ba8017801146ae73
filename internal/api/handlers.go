// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package api

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ratingrec/internal/logging"
	"github.com/tomtom215/ratingrec/internal/metrics"
	"github.com/tomtom215/ratingrec/internal/recommend"
	"github.com/tomtom215/ratingrec/internal/validation"
)

// EmptyRecommendationsMessage is returned when the engine has nothing to suggest.
const EmptyRecommendationsMessage = "No recommendations yet. Rate more items."

// maxRequestBodyBytes bounds a ratings payload.
const maxRequestBodyBytes = 1 << 20

// Recommender is the engine surface the handlers depend on.
type Recommender interface {
	Recommend(ctx context.Context, ratings recommend.Ratings) ([]recommend.Recommendation, error)
	Explain(ctx context.Context, ratings recommend.Ratings) (*recommend.Explanation, error)
	Store() *recommend.RatingStore
}

// Handler serves the recommendation API.
type Handler struct {
	engine    Recommender
	timeout   time.Duration
	startTime time.Time
}

// NewHandler creates a handler. timeout bounds each engine call.
func NewHandler(engine Recommender, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Handler{
		engine:    engine,
		timeout:   timeout,
		startTime: time.Now(),
	}
}

// RecommendationRequest is the body of the recommendation endpoints.
// Keys are item ids, values are scores. A score of 0 means "no selection"
// and is dropped, as a rating picker reports it.
type RecommendationRequest struct {
	Ratings map[int]int `json:"ratings" validate:"dive,keys,gt=0,endkeys,min=0,max=5"`
}

// RecommendationsResponse is the payload of POST /api/v1/recommendations.
type RecommendationsResponse struct {
	Items   []recommend.Recommendation `json:"items"`
	Count   int                        `json:"count"`
	Message string                     `json:"message,omitempty"`
}

// ItemsResponse is the payload of GET /api/v1/items.
type ItemsResponse struct {
	Items []recommend.Item `json:"items"`
	Count int              `json:"count"`
}

// HealthLive reports that the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady reports whether a dataset is loaded and the engine can serve.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var store *recommend.RatingStore
	if h.engine != nil {
		store = h.engine.Store()
	}
	if store == nil || store.ItemCount() == 0 {
		rw.ServiceUnavailable("Rating store not loaded")
		return
	}

	rw.Success(map[string]interface{}{
		"ready":  true,
		"items":  store.ItemCount(),
		"users":  store.UserCount(),
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// Items lists the catalog in ascending id order.
func (h *Handler) Items(w http.ResponseWriter, r *http.Request) {
	items := h.engine.Store().AllItems()
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	NewResponseWriter(w, r).Success(ItemsResponse{Items: items, Count: len(items)})
}

// Recommendations returns the top items for the ratings in the request body.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ratings, ok := decodeRatings(rw, r)
	if !ok {
		metrics.RecordRecommendation(metrics.OutcomeInvalid, 0, 0, time.Since(rw.startTime))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	start := time.Now()
	recs, err := h.engine.Recommend(ctx, ratings)
	if err != nil {
		h.engineError(ctx, rw, err, len(ratings), start)
		return
	}

	resp := RecommendationsResponse{Items: recs, Count: len(recs)}
	outcome := metrics.OutcomeOK
	if len(recs) == 0 {
		outcome = metrics.OutcomeEmpty
		resp.Message = EmptyRecommendationsMessage
	}
	metrics.RecordRecommendation(outcome, len(ratings), len(recs), time.Since(start))

	logging.Ctx(ctx).Debug().
		Int("rated", len(ratings)).
		Int("returned", len(recs)).
		Msg("recommendations served")

	rw.Success(resp)
}

// Explain returns the recommendations together with the neighbors behind them.
func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ratings, ok := decodeRatings(rw, r)
	if !ok {
		metrics.RecordRecommendation(metrics.OutcomeInvalid, 0, 0, time.Since(rw.startTime))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	start := time.Now()
	exp, err := h.engine.Explain(ctx, ratings)
	if err != nil {
		h.engineError(ctx, rw, err, len(ratings), start)
		return
	}

	outcome := metrics.OutcomeOK
	if len(exp.Recommendations) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.RecordRecommendation(outcome, len(ratings), len(exp.Recommendations), time.Since(start))

	rw.Success(exp)
}

func (h *Handler) engineError(ctx context.Context, rw *ResponseWriter, err error, rated int, start time.Time) {
	switch {
	case errors.Is(err, recommend.ErrInvalidRating), errors.Is(err, recommend.ErrInvalidItemID):
		metrics.RecordRecommendation(metrics.OutcomeInvalid, rated, 0, time.Since(start))
		rw.ValidationError(err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		metrics.RecordRecommendation(metrics.OutcomeError, rated, 0, time.Since(start))
		logging.Ctx(ctx).Warn().Err(err).Dur("timeout", h.timeout).Msg("recommendation aborted")
		rw.ServiceUnavailable("Recommendation timed out")
	default:
		metrics.RecordRecommendation(metrics.OutcomeError, rated, 0, time.Since(start))
		logging.Ctx(ctx).Error().Err(err).Msg("recommendation failed")
		rw.InternalError("Failed to compute recommendations")
	}
}

// decodeRatings reads and validates the request body. On failure the error
// response has already been written.
func decodeRatings(rw *ResponseWriter, r *http.Request) (recommend.Ratings, bool) {
	var req RecommendationRequest

	dec := json.NewDecoder(http.MaxBytesReader(rw.w, r.Body, maxRequestBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		rw.BadRequest("Invalid request body: " + err.Error())
		return nil, false
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return nil, false
	}

	ratings, err := recommend.FromSelections(req.Ratings)
	if err != nil {
		rw.ValidationError(err.Error(), nil)
		return nil, false
	}
	return ratings, true
}
