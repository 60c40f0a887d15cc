// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/upstream"
)

// maxIDLength bounds user and movie ids accepted in paths and queries. The
// max tags on the request structs below must match it.
const maxIDLength = 256

// legacyInternalMessage is the legacy error body for failures other than an
// unreachable catalog service.
const legacyInternalMessage = "Error interno al generar recomendaciones"

// userRequest holds the validated parameters of a user recommendation.
type userRequest struct {
	UserID string `validate:"required,max=256"`
}

// similarRequest holds the validated parameters of a similar movies query.
type similarRequest struct {
	MovieID string `validate:"required,max=256"`
	UserID  string `validate:"max=256"`
}

// RecommendLegacy handles GET /recomendar/{userID} with the response shape
// of the service this one replaces.
func (h *Handler) RecommendLegacy(w http.ResponseWriter, r *http.Request) {
	req := userRequest{UserID: chi.URLParam(r, "userID")}
	if apiErr := validateRequest(&req); apiErr != nil {
		writeJSON(w, http.StatusBadRequest, models.LegacyError{Error: apiErr.Message})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	res, err := h.recommendForUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, upstream.ErrDataUnavailable) {
			logging.Ctx(ctx).Warn().Err(err).Str("user_id", sanitizeLogValue(req.UserID)).Msg("Upstream unavailable")
			writeJSON(w, http.StatusBadGateway, models.LegacyError{Error: models.LegacyUnavailableMessage})
			return
		}
		logging.Ctx(ctx).Error().Err(err).Str("user_id", sanitizeLogValue(req.UserID)).Msg("Recommendation failed")
		writeJSON(w, http.StatusInternalServerError, models.LegacyError{Error: legacyInternalMessage})
		return
	}

	writeJSON(w, http.StatusOK, models.NewLegacyRecommendations(res.Recommendations()))
}

// RecommendUser handles GET /api/v1/recommendations/user/{userID}.
func (h *Handler) RecommendUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := userRequest{UserID: chi.URLParam(r, "userID")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	res, err := h.recommendForUser(ctx, req.UserID)
	if err != nil {
		respondRecommendError(w, err)
		return
	}

	recs := res.Recommendations()
	respondSuccess(w, models.UserRecommendations{
		UserID:          req.UserID,
		Recommendations: recs,
		Count:           len(recs),
		CatalogSize:     res.References,
		Comparisons:     res.Comparisons,
	}, start)
}

// SimilarMovies handles GET /api/v1/recommendations/similar/{movieID}.
//
// Query parameters:
//   - user: optional, excludes movies this user already rated
//   - n: optional, result size between 1 and the configured maximum
func (h *Handler) SimilarMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := similarRequest{
		MovieID: chi.URLParam(r, "movieID"),
		UserID:  r.URL.Query().Get("user"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	n := h.config.Recommend.PerReferenceN
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, CodeBadRequest, "n must be an integer", nil)
			return
		}
		n = parsed
	}
	if apiErr := validateParam("n", n, fmt.Sprintf("min=1,max=%d", h.config.Recommend.MaxN)); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	ds, err := h.source.FetchAll(ctx)
	if err != nil {
		metrics.RecordRecommendationError(metrics.ModeSimilar, errorReason(err))
		respondRecommendError(w, err)
		return
	}

	rankStart := time.Now()
	candidates, err := h.engine.SimilarTo(ctx, recommend.SimilarInput{
		Catalog: ds.Movies,
		Genres:  ds.Genres,
		Ratings: ds.Ratings,
		UserID:  req.UserID,
		MovieID: req.MovieID,
		N:       n,
	})
	if err != nil {
		metrics.RecordRecommendationError(metrics.ModeSimilar, errorReason(err))
		respondRecommendError(w, err)
		return
	}

	metrics.RecordRecommendation(metrics.RecommendationStats{
		Mode:        metrics.ModeSimilar,
		Duration:    time.Since(rankStart),
		Results:     len(candidates),
		CatalogSize: len(ds.Movies),
		Comparisons: max(len(ds.Movies)-1, 0),
	})

	respondSuccess(w, models.NewSimilarMovies(req.MovieID, req.UserID, candidates), start)
}

// recommendForUser fetches a fresh snapshot and runs full aggregation on it.
func (h *Handler) recommendForUser(ctx context.Context, userID string) (*recommend.Result, error) {
	ds, err := h.source.FetchAll(ctx)
	if err != nil {
		metrics.RecordRecommendationError(metrics.ModeUser, errorReason(err))
		return nil, err
	}

	res, err := h.engine.RecommendForUser(ctx, recommend.Input{
		Catalog: ds.Movies,
		Genres:  ds.Genres,
		Ratings: ds.Ratings,
		UserID:  userID,
	})
	if err != nil {
		metrics.RecordRecommendationError(metrics.ModeUser, errorReason(err))
		return nil, err
	}

	metrics.RecordRecommendation(metrics.RecommendationStats{
		Mode:        metrics.ModeUser,
		Duration:    res.Elapsed,
		Results:     len(res.Movies),
		CatalogSize: len(ds.Movies),
		Comparisons: res.Comparisons,
		ZeroVectors: res.ZeroVectors,
	})
	return res, nil
}

// respondRecommendError maps engine and upstream errors to the envelope.
func respondRecommendError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, upstream.ErrDataUnavailable):
		respondError(w, http.StatusBadGateway, CodeUpstreamUnavailable, "Catalog data is unavailable", err)
	case errors.Is(err, recommend.ErrMovieNotFound):
		respondError(w, http.StatusNotFound, CodeNotFound, "Movie not found", nil)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, CodeTimeout, "Recommendation timed out", err)
	default:
		respondError(w, http.StatusInternalServerError, CodeInternalError, "Failed to compute recommendations", err)
	}
}

// errorReason classifies err for the recommend_errors_total metric.
func errorReason(err error) string {
	switch {
	case errors.Is(err, upstream.ErrDataUnavailable):
		return "upstream"
	case errors.Is(err, recommend.ErrMovieNotFound):
		return "not_found"
	case errors.Is(err, recommend.ErrDimensionMismatch):
		return "dimension_mismatch"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "internal"
	}
}
