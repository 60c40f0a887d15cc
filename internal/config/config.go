// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package config loads service configuration from built-in defaults, an
// optional YAML file and environment variables, in that order of
// precedence, and validates the result before anything is started.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/tomtom215/cinematch/internal/validation"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Upstream  UpstreamConfig  `koanf:"upstream"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	// RequestTimeout bounds the upstream fetch plus ranking of one request.
	// It must leave room under WriteTimeout to write the timeout response.
	RequestTimeout  time.Duration `koanf:"request_timeout" validate:"gt=0,ltfield=WriteTimeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	Environment     string        `koanf:"environment" validate:"oneof=development production"`
}

// UpstreamConfig points at the catalog service that owns movies, genres and
// ratings.
type UpstreamConfig struct {
	BaseURL     string `koanf:"base_url" validate:"required,http_url"`
	MoviesPath  string `koanf:"movies_path" validate:"required,startswith=/"`
	GenresPath  string `koanf:"genres_path" validate:"required,startswith=/"`
	RatingsPath string `koanf:"ratings_path" validate:"required,startswith=/"`

	// Timeout bounds a single HTTP request, retries excluded.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// MaxRetries is how many times a 429 response is retried.
	MaxRetries     int           `koanf:"max_retries" validate:"min=0,max=10"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay" validate:"gt=0"`

	// RateLimit is the outgoing request rate per second. 0 disables it.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`
	RateBurst int     `koanf:"rate_burst" validate:"min=1"`

	// ProbeInterval is how often the background monitor pings every source.
	// 0 disables the monitor.
	ProbeInterval time.Duration `koanf:"probe_interval" validate:"gte=0"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the per-source circuit breakers.
type BreakerConfig struct {
	Enabled bool `koanf:"enabled"`

	// MaxRequests is the number of probes allowed while half-open.
	MaxRequests uint32 `koanf:"max_requests" validate:"min=1"`

	// Interval clears closed-state counts periodically. 0 never clears.
	Interval time.Duration `koanf:"interval" validate:"gte=0"`

	// Timeout is how long the breaker stays open.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// FailureThreshold consecutive failures trip the breaker.
	FailureThreshold uint32 `koanf:"failure_threshold" validate:"min=1"`
}

// RecommendConfig mirrors the engine settings.
type RecommendConfig struct {
	PerReferenceN       int `koanf:"per_reference_n" validate:"min=1"`
	MaxN                int `koanf:"max_n" validate:"gtefield=PerReferenceN"`
	Workers             int `koanf:"workers" validate:"min=0"` // 0 = runtime.NumCPU()
	LargeCatalogWarning int `koanf:"large_catalog_warning" validate:"min=0"`
}

// EffectiveWorkers resolves Workers, mapping 0 to the CPU count.
func (c RecommendConfig) EffectiveWorkers() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// SecurityConfig holds CORS and inbound rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins" validate:"min=1"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig is passed to logging.Init.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Address returns the listen address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction reports whether production checks apply.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Validate checks field rules and the cross-field constraints that struct
// tags cannot express.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if c.IsProduction() && slices.Contains(c.Security.CORSOrigins, "*") {
		return errors.New("security.cors_origins must not contain \"*\" in production")
	}
	if c.Upstream.Breaker.Enabled && c.Upstream.Breaker.Timeout < c.Upstream.Timeout {
		return fmt.Errorf("upstream.breaker.timeout (%s) must be >= upstream.timeout (%s)",
			c.Upstream.Breaker.Timeout, c.Upstream.Timeout)
	}
	return nil
}
