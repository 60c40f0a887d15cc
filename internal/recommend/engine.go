// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrMovieNotFound is returned when a reference movie is not in the catalog.
var ErrMovieNotFound = errors.New("movie not found in catalog")

// Engine produces genre-similarity recommendations. It holds no per-request
// state and is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// RecommendForUser ranks every catalog movie as a reference and merges the
// per-reference lists into one deduplicated list in first-seen order.
//
//nolint:gocritic // hugeParam: in passed by value for immutability
func (e *Engine) RecommendForUser(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()
	logger := e.logger.With().
		Str("user_id", in.UserID).
		Int("catalog", len(in.Catalog)).
		Int("genres", len(in.Genres)).
		Logger()

	if e.config.LargeCatalogWarning > 0 && len(in.Catalog) > e.config.LargeCatalogWarning {
		logger.Warn().
			Int("threshold", e.config.LargeCatalogWarning).
			Msg("catalog is large, aggregation cost grows quadratically")
	}

	enc := EncodeGenres(in.Catalog, in.Genres)
	zeroVectors := countZeroVectors(logger, in.Catalog, enc)
	rated := RatedSet(in.Ratings, in.UserID)

	lists, err := e.rankAll(ctx, in.Catalog, enc, rated)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Movies:      merge(lists),
		References:  len(in.Catalog),
		Comparisons: countComparisons(in.Catalog),
		ZeroVectors: zeroVectors,
		Elapsed:     time.Since(start),
	}

	logger.Debug().
		Int("rated", len(rated)).
		Int("recommended", len(res.Movies)).
		Int("comparisons", res.Comparisons).
		Dur("elapsed", res.Elapsed).
		Msg("recommendation complete")

	return res, nil
}

// SimilarTo ranks the catalog against a single reference movie.
//
//nolint:gocritic // hugeParam: in passed by value for immutability
func (e *Engine) SimilarTo(ctx context.Context, in SimilarInput) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ref, ok := findMovie(in.Catalog, in.MovieID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMovieNotFound, in.MovieID)
	}

	n := in.N
	if n <= 0 {
		n = e.config.PerReferenceN
	}
	if n > e.config.MaxN {
		n = e.config.MaxN
	}

	var rated map[string]struct{}
	if in.UserID != "" {
		rated = RatedSet(in.Ratings, in.UserID)
	}

	enc := EncodeGenres(in.Catalog, in.Genres)
	return Rank(ref, in.Catalog, enc, rated, n)
}

// rankAll ranks every catalog movie as a reference. The returned slice is
// indexed by reference position regardless of how work was scheduled.
func (e *Engine) rankAll(ctx context.Context, catalog []Movie, enc *Encoding, rated map[string]struct{}) ([][]Candidate, error) {
	lists := make([][]Candidate, len(catalog))
	n := e.config.PerReferenceN

	if e.config.Workers <= 1 || len(catalog) < 2 {
		for i := range catalog {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			ranked, err := Rank(catalog[i], catalog, enc, rated, n)
			if err != nil {
				return nil, err
			}
			lists[i] = ranked
		}
		return lists, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	jobs := make(chan int)
	for w := 0; w < min(e.config.Workers, len(catalog)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				ranked, err := Rank(catalog[i], catalog, enc, rated, n)
				if err != nil {
					fail(err)
					continue
				}
				lists[i] = ranked
			}
		}()
	}

dispatch:
	for i := range catalog {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return lists, nil
}

// countZeroVectors counts movies without any recognized genre. They score 0
// against every other movie.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func countZeroVectors(logger zerolog.Logger, catalog []Movie, enc *Encoding) int {
	count := 0
	for i := range catalog {
		if isZero(enc.lookup(catalog[i].ID)) {
			count++
			logger.Debug().
				Str("movie_id", catalog[i].ID).
				Msg("movie has no recognized genres, similarity will be 0")
		}
	}
	return count
}

// merge concatenates per-reference lists, skipping movies already emitted.
func merge(lists [][]Candidate) []Movie {
	seen := make(map[string]struct{})
	movies := make([]Movie, 0)
	for _, list := range lists {
		for _, c := range list {
			if _, dup := seen[c.Movie.ID]; dup {
				continue
			}
			seen[c.Movie.ID] = struct{}{}
			movies = append(movies, c.Movie)
		}
	}
	return movies
}

// countComparisons returns the number of similarity computations performed
// when every movie is ranked against the rest of the catalog.
func countComparisons(catalog []Movie) int {
	counts := make(map[string]int, len(catalog))
	for i := range catalog {
		counts[catalog[i].ID]++
	}
	total := 0
	for i := range catalog {
		total += len(catalog) - counts[catalog[i].ID]
	}
	return total
}

// findMovie returns the first catalog movie with the given ID.
func findMovie(catalog []Movie, id string) (Movie, bool) {
	for i := range catalog {
		if catalog[i].ID == id {
			return catalog[i], true
		}
	}
	return Movie{}, false
}
