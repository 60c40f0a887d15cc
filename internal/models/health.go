// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

// HealthStatus represents the readiness check response.
type HealthStatus struct {
	Status            string            `json:"status"` // "ready" or "not_ready"
	Version           string            `json:"version"`
	UpstreamConnected bool              `json:"upstream_connected"`
	Breakers          map[string]string `json:"breakers"`
	Uptime            float64           `json:"uptime_seconds"`
	Error             string            `json:"error,omitempty"`
}

// Liveness represents the liveness check response.
type Liveness struct {
	Alive  bool    `json:"alive"`
	Uptime float64 `json:"uptime_seconds"`
}
