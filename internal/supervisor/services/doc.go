// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package services provides suture.Service wrappers for Cinematch components.

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and translates a component's lifecycle into that context-aware pattern.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - http.ErrServerClosed is treated as a clean exit

Upstream Monitor (MonitorService):
  - Probes the catalog service on a fixed interval
  - Keeps the uptime gauge current
  - Logs reachability transitions only

# Usage

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))
	tree.AddBackgroundService(services.NewMonitorService(client, services.MonitorServiceConfig{
	    Interval: 30 * time.Second,
	}, logger))
*/
package services
