// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package upstream reads movies, genres and ratings from the catalog
// service that owns them.
//
// Every request is throttled by a token bucket, retried on HTTP 429 with
// exponential backoff (honoring Retry-After) and guarded by a per-source
// circuit breaker. Any failure to obtain a collection is reported as
// ErrDataUnavailable so callers can answer with a single upstream error
// without inspecting transport details.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// ErrDataUnavailable is returned when any upstream collection cannot be
// fetched or decoded.
var ErrDataUnavailable = errors.New("upstream data unavailable")

var (
	errRateLimited = errors.New("rate limit exceeded")
	errDecode      = errors.New("invalid response body")
)

// maxErrorBodySize limits how much of an error response is kept for logs.
const maxErrorBodySize = 64 * 1024

// Source names one upstream collection.
type Source string

const (
	SourceMovies  Source = "movies"
	SourceGenres  Source = "genres"
	SourceRatings Source = "ratings"
)

// Sources lists every upstream collection.
var Sources = []Source{SourceMovies, SourceGenres, SourceRatings}

// StatusError reports a non-200 upstream response.
type StatusError struct {
	Source     Source
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d: %s", e.Source, e.StatusCode, e.Body)
}

// Client fetches catalog data over HTTP. It is safe for concurrent use.
type Client struct {
	baseURL        string
	paths          map[Source]string
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
	breakers       map[Source]*breaker
	logger         zerolog.Logger
}

// NewClient builds a client from the upstream configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg *config.UpstreamConfig, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "upstream").Logger()

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		paths: map[Source]string{
			SourceMovies:  cfg.MoviesPath,
			SourceGenres:  cfg.GenresPath,
			SourceRatings: cfg.RatingsPath,
		},
		client:         &http.Client{Timeout: cfg.Timeout},
		limiter:        rate.NewLimiter(limit, max(cfg.RateBurst, 1)),
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		breakers:       make(map[Source]*breaker, len(Sources)),
		logger:         logger,
	}
	for _, src := range Sources {
		c.breakers[src] = newBreaker("upstream-"+string(src), &cfg.Breaker, logger)
	}
	return c
}

// Movies fetches the movie catalog in upstream order.
func (c *Client) Movies(ctx context.Context) ([]recommend.Movie, error) {
	raw, err := fetch[pelicula](ctx, c, SourceMovies)
	if err != nil {
		return nil, err
	}
	return toMovies(raw), nil
}

// Genres fetches the genre vocabulary in upstream order.
func (c *Client) Genres(ctx context.Context) ([]recommend.Genre, error) {
	raw, err := fetch[genero](ctx, c, SourceGenres)
	if err != nil {
		return nil, err
	}
	return toGenres(raw), nil
}

// Ratings fetches the rating history of all users.
func (c *Client) Ratings(ctx context.Context) ([]recommend.Rating, error) {
	raw, err := fetch[rating](ctx, c, SourceRatings)
	if err != nil {
		return nil, err
	}
	return toRatings(raw), nil
}

// FetchAll fetches the three collections concurrently. The first failure
// cancels the remaining requests.
func (c *Client) FetchAll(ctx context.Context) (*Dataset, error) {
	var ds Dataset
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		ds.Movies, err = c.Movies(gctx)
		return err
	})
	g.Go(func() (err error) {
		ds.Genres, err = c.Genres(gctx)
		return err
	})
	g.Go(func() (err error) {
		ds.Ratings, err = c.Ratings(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Ping checks that every source answers with a decodable JSON array.
func (c *Client) Ping(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, src := range Sources {
		g.Go(func() error {
			_, err := fetch[json.RawMessage](gctx, c, src)
			return err
		})
	}
	return g.Wait()
}

// BreakerStates reports the circuit state of every source.
func (c *Client) BreakerStates() map[Source]string {
	states := make(map[Source]string, len(c.breakers))
	for src, b := range c.breakers {
		states[src] = b.State()
	}
	return states
}

// fetch retrieves and decodes one collection under its breaker, recording
// metrics and mapping every failure to ErrDataUnavailable.
func fetch[T any](ctx context.Context, c *Client, src Source) ([]T, error) {
	start := time.Now()
	var out []T

	err := c.breakers[src].execute(func() error {
		return c.getJSON(ctx, src, &out)
	})

	elapsed := time.Since(start)
	if err != nil {
		reason := classify(err)
		metrics.RecordUpstreamFetch(string(src), elapsed, 0, reason)
		c.logger.Warn().
			Err(err).
			Str("source", string(src)).
			Str("reason", reason).
			Str("request_id", logging.RequestIDFromContext(ctx)).
			Dur("elapsed", elapsed).
			Msg("Upstream fetch failed")
		return nil, fmt.Errorf("%w: %s: %w", ErrDataUnavailable, src, err)
	}

	metrics.RecordUpstreamFetch(string(src), elapsed, len(out), "")
	c.logger.Debug().
		Str("source", string(src)).
		Int("records", len(out)).
		Dur("elapsed", elapsed).
		Msg("Upstream fetch complete")
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, src Source, out interface{}) error {
	resp, err := c.doRequestWithRateLimit(ctx, src, c.baseURL+c.paths[src])
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{
			Source:     src,
			StatusCode: resp.StatusCode,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", errDecode, err)
	}
	return nil
}

// doRequestWithRateLimit performs a GET, waiting on the outgoing limiter
// before each attempt and retrying HTTP 429 with exponential backoff.
func (c *Client) doRequestWithRateLimit(ctx context.Context, src Source, reqURL string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if id := logging.RequestIDFromContext(ctx); id != "" {
			req.Header.Set("X-Request-ID", id)
		}
		if id := logging.CorrelationIDFromContext(ctx); id != "" {
			req.Header.Set("X-Correlation-ID", id)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		_ = resp.Body.Close()
		if attempt >= c.maxRetries {
			return nil, fmt.Errorf("%w after %d retries (HTTP 429)", errRateLimited, c.maxRetries)
		}

		delay := retryDelay(resp.Header.Get("Retry-After"), c.retryBaseDelay, attempt)
		metrics.RecordUpstreamRetry(string(src))
		c.logger.Debug().
			Str("source", string(src)).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("Upstream rate limited, backing off")

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
}

// retryDelay returns the wait before the next attempt: Retry-After when the
// server sent a usable value, otherwise base doubled per attempt.
func retryDelay(retryAfter string, base time.Duration, attempt int) time.Duration {
	if retryAfter != "" {
		if secs, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
		if at, err := http.ParseTime(retryAfter); err == nil {
			if d := time.Until(at); d > 0 {
				return d
			}
			return 0
		}
	}
	return base * time.Duration(1<<uint(attempt))
}

// readBodyForError reads at most maxErrorBodySize bytes of an error body.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, "\n... (truncated)"...)
	}
	return body
}

// classify maps a fetch error to a metrics reason label.
func classify(err error) string {
	var statusErr *StatusError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case isBreakerRejection(err):
		return "circuit_open"
	case errors.Is(err, errRateLimited):
		return "rate_limited"
	case errors.Is(err, errDecode):
		return "decode"
	case errors.As(err, &statusErr):
		return "status"
	default:
		return "transport"
	}
}
