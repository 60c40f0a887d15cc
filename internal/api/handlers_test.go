// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/upstream"
)

// fakeSource is an in-memory DataSource.
type fakeSource struct {
	mu      sync.Mutex
	ds      *upstream.Dataset
	err     error
	pingErr error
	states  map[upstream.Source]string
	fetches int
}

func (f *fakeSource) FetchAll(ctx context.Context) (*upstream.Dataset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.ds, nil
}

func (f *fakeSource) Ping(context.Context) error {
	return f.pingErr
}

func (f *fakeSource) BreakerStates() map[upstream.Source]string {
	if f.states != nil {
		return f.states
	}
	return map[upstream.Source]string{
		upstream.SourceMovies:  "closed",
		upstream.SourceGenres:  "closed",
		upstream.SourceRatings: "closed",
	}
}

// abcDataset is a three movie catalog: A is Action, B is Action and Comedy,
// C is Drama.
func abcDataset(ratings ...recommend.Rating) *upstream.Dataset {
	return &upstream.Dataset{
		Movies: []recommend.Movie{
			{ID: "A", Title: "Alpha", VideoURL: "http://v/a", Genres: []string{"Action"}},
			{ID: "B", Title: "Bravo", VideoURL: "http://v/b", Genres: []string{"Action", "Comedy"}},
			{ID: "C", Title: "Charlie", VideoURL: "http://v/c", Genres: []string{"Drama"}},
		},
		Genres: []recommend.Genre{
			{Name: "Action"}, {Name: "Comedy"}, {Name: "Drama"},
		},
		Ratings: ratings,
	}
}

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Security.RateLimitDisabled = true
	return cfg
}

func newTestHandler(t *testing.T, src DataSource, cfg *config.Config) *Handler {
	t.Helper()
	engine, err := recommend.NewEngine(&recommend.Config{
		PerReferenceN: cfg.Recommend.PerReferenceN,
		MaxN:          cfg.Recommend.MaxN,
		Workers:       1,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return NewHandler(src, engine, cfg, "test")
}

func newTestRouter(t *testing.T, src DataSource) http.Handler {
	t.Helper()
	cfg := testConfig()
	h := newTestHandler(t, src, cfg)
	return NewRouter(h, NewChiMiddlewareFromConfig(&cfg.Security)).SetupChi()
}

func serve(handler http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

type envelope[T any] struct {
	Status   string           `json:"status"`
	Data     T                `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return env
}
