// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
)

// readyTimeout bounds the upstream ping of the readiness probe.
const readyTimeout = 5 * time.Second

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK as long as the process can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: models.Liveness{
			Alive:  true,
			Uptime: time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 200 OK only if every upstream source answers through its circuit
// breaker, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	pingErr := h.source.Ping(ctx)

	breakers := make(map[string]string)
	for src, state := range h.source.BreakerStates() {
		breakers[string(src)] = state
	}

	health := models.HealthStatus{
		Status:            "ready",
		Version:           h.version,
		UpstreamConnected: pingErr == nil,
		Breakers:          breakers,
		Uptime:            time.Since(h.startTime).Seconds(),
	}

	statusCode := http.StatusOK
	if pingErr != nil {
		statusCode = http.StatusServiceUnavailable
		health.Status = "not_ready"
		health.Error = pingErr.Error()
		logging.Ctx(ctx).Warn().Err(pingErr).Msg("Readiness check failed")
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: health.Status,
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
