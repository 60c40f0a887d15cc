// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api serves recommendations over HTTP using the Chi router.

Every request fetches a fresh snapshot of movies, genres and ratings from the
catalog service and ranks it with the recommendation engine. Nothing is
cached between requests.

Routes:

	GET /recomendar/{userID}                          legacy body
	GET /api/v1/recommendations/user/{userID}         envelope
	GET /api/v1/recommendations/similar/{movieID}     envelope, ?user=&n=
	GET /api/v1/health/live
	GET /api/v1/health/ready
	GET /metrics
*/
package api

import (
	"context"
	"time"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/upstream"
)

// Error codes returned in APIError.Code.
const (
	CodeBadRequest          = "BAD_REQUEST"
	CodeNotFound            = "NOT_FOUND"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeInternalError       = "INTERNAL_ERROR"
	CodeRateLimitExceeded   = "RATE_LIMIT_EXCEEDED"
	CodeTimeout             = "TIMEOUT"
)

// DataSource provides catalog snapshots. *upstream.Client implements it.
type DataSource interface {
	FetchAll(ctx context.Context) (*upstream.Dataset, error)
	Ping(ctx context.Context) error
	BreakerStates() map[upstream.Source]string
}

// Handler handles all HTTP API requests.
type Handler struct {
	source         DataSource
	engine         *recommend.Engine
	config         *config.Config
	version        string
	startTime      time.Time
	requestTimeout time.Duration
}

// NewHandler creates a Handler. The request timeout bounds the upstream
// fetch plus ranking and is shorter than the server write timeout, so a
// timed out request still gets its 504 written.
func NewHandler(source DataSource, engine *recommend.Engine, cfg *config.Config, version string) *Handler {
	return &Handler{
		source:         source,
		engine:         engine,
		config:         cfg,
		version:        version,
		startTime:      time.Now(),
		requestTimeout: cfg.Server.RequestTimeout,
	}
}
