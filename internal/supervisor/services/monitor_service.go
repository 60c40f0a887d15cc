// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/metrics"
)

// Pinger checks that the catalog service answers. *upstream.Client
// implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MonitorServiceConfig holds configuration for the monitor service.
type MonitorServiceConfig struct {
	// Interval between upstream probes. Defaults to 30s.
	Interval time.Duration

	// ProbeTimeout bounds a single probe. Defaults to Interval.
	ProbeTimeout time.Duration

	// StartTime is reported through the uptime gauge.
	StartTime time.Time
}

// MonitorService periodically probes the catalog service and refreshes the
// uptime gauge. Probes go through the circuit breakers, so a dead upstream
// trips them before user traffic does, and a recovered one closes them.
type MonitorService struct {
	pinger  Pinger
	config  MonitorServiceConfig
	logger  zerolog.Logger
	name    string
	healthy *bool
}

// NewMonitorService creates a new monitor service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMonitorService(pinger Pinger, cfg MonitorServiceConfig, logger zerolog.Logger) *MonitorService {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = cfg.Interval
	}
	if cfg.StartTime.IsZero() {
		cfg.StartTime = time.Now()
	}
	return &MonitorService{
		pinger: pinger,
		config: cfg,
		logger: logger.With().Str("service", "upstream-monitor").Logger(),
		name:   "upstream-monitor",
	}
}

// Serve implements suture.Service.
func (s *MonitorService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.config.Interval).Msg("upstream monitor starting")

	s.tick(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("upstream monitor shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick refreshes uptime and runs one probe, logging only state changes.
func (s *MonitorService) tick(ctx context.Context) {
	metrics.UpdateUptime(s.config.StartTime)

	probeCtx, cancel := context.WithTimeout(ctx, s.config.ProbeTimeout)
	defer cancel()

	err := s.pinger.Ping(probeCtx)
	if ctx.Err() != nil {
		return
	}
	healthy := err == nil

	switch {
	case s.healthy == nil && healthy:
		s.logger.Info().Msg("upstream reachable")
	case s.healthy == nil || *s.healthy != healthy:
		if healthy {
			s.logger.Info().Msg("upstream recovered")
		} else {
			s.logger.Warn().Err(err).Msg("upstream unreachable")
		}
	}
	s.healthy = &healthy
}

// Healthy reports the result of the last completed probe. ok is false
// before the first probe finishes. Not safe to call concurrently with Serve.
func (s *MonitorService) Healthy() (healthy, ok bool) {
	if s.healthy == nil {
		return false, false
	}
	return *s.healthy, true
}

// String returns the service name for logging.
func (s *MonitorService) String() string {
	return s.name
}
