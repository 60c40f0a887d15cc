// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides HTTP instrumentation middleware.

PrometheusMetrics records request count, latency and in-flight requests for
every endpoint. The endpoint label is the chi route pattern, for example
/api/v1/recommendations/user/{userID}, so user and movie ids never become
label values. Requests that match no route are labelled "unmatched".

Usage:

	http.HandleFunc("/api/v1/endpoint", middleware.PrometheusMetrics(handler))
*/
package middleware
