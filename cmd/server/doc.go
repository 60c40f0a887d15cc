// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package main is the entry point for the Cinematch server.

Cinematch recommends movies by genre similarity. For every request it pulls a
fresh snapshot of movies, genres and ratings from the catalog service, encodes
each movie as a binary genre vector and ranks the catalog by cosine
similarity against the movies the user has rated.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("cinematch")
	├── APISupervisor ("api-layer")
	│   └── HTTPServerService
	└── BackgroundSupervisor ("background-layer")
	    └── MonitorService (UPSTREAM_PROBE_INTERVAL > 0)

# Endpoints

	GET /recomendar/{userID}                     legacy response shape
	GET /api/v1/recommendations/user/{userID}    enveloped user recommendations
	GET /api/v1/recommendations/similar/{movieID}
	GET /api/v1/health/live
	GET /api/v1/health/ready
	GET /metrics

# Configuration

Settings are layered with Koanf v2, highest priority last:
  - Built-in defaults
  - config.yaml (or CONFIG_PATH)
  - Environment variables

Common variables:

	HTTP_PORT=4000
	UPSTREAM_URL=http://localhost:5283
	RECOMMEND_PER_REFERENCE_N=5
	RECOMMEND_WORKERS=0          # 0 uses every CPU
	LOG_LEVEL=info

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for up to HTTP_SHUTDOWN_TIMEOUT before the process exits.
*/
package main
