// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package models defines the JSON shapes served by the HTTP API.

Versioned endpoints wrap their payload in APIResponse. The legacy
/recomendar route keeps the field names of the service it replaces, see
LegacyRecommendations and LegacyError.
*/
package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse represents a standardized API response wrapper used by the
// versioned HTTP endpoints.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"user_id": "1", "recommendations": [...], "count": 3},
//	  "metadata": {
//	    "timestamp": "2026-03-01T12:00:00Z",
//	    "query_time_ms": 45
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {
//	    "code": "UPSTREAM_UNAVAILABLE",
//	    "message": "Catalog data is unavailable"
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
//
// QueryTimeMS covers the upstream fetch plus the ranking work.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - BAD_REQUEST: Malformed path or query parameter
//   - VALIDATION_ERROR: Parameter out of range
//   - NOT_FOUND: Movie doesn't exist in the catalog
//   - UPSTREAM_UNAVAILABLE: Catalog service failed or circuit is open
//   - RATE_LIMIT_EXCEEDED: Too many requests
//   - INTERNAL_ERROR: Unexpected failure while ranking
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
