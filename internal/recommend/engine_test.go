// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	engine, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func movieIDs(ms []Movie) []string {
	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.ID
	}
	return ids
}

// syntheticCatalog builds a catalog whose genre sets cycle through the
// subsets of a five-genre vocabulary.
func syntheticCatalog(size int) ([]Movie, []Genre) {
	names := []string{"Action", "Comedy", "Drama", "Horror", "Sci-Fi"}
	movies := make([]Movie, size)
	for i := range movies {
		var g []string
		mask := (i*7 + 3) % 32
		for j, name := range names {
			if mask&(1<<j) != 0 {
				g = append(g, name)
			}
		}
		movies[i] = Movie{ID: fmt.Sprintf("m%03d", i), Title: fmt.Sprintf("Movie %d", i), Genres: g}
	}
	return movies, vocabulary(names...)
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{name: "nil config uses defaults", cfg: nil},
		{name: "default config", cfg: DefaultConfig()},
		{name: "zero per reference n", cfg: &Config{PerReferenceN: 0, MaxN: 10, Workers: 1}, wantErr: true},
		{name: "max n below per reference n", cfg: &Config{PerReferenceN: 5, MaxN: 2, Workers: 1}, wantErr: true},
		{name: "zero workers", cfg: &Config{PerReferenceN: 5, MaxN: 10, Workers: 0}, wantErr: true},
		{name: "negative warning threshold", cfg: &Config{PerReferenceN: 5, MaxN: 10, Workers: 1, LargeCatalogWarning: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine, err := NewEngine(tt.cfg, zerolog.Nop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewEngine() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && engine.Config().PerReferenceN < 1 {
				t.Errorf("PerReferenceN = %d, want >= 1", engine.Config().PerReferenceN)
			}
		})
	}
}

func TestEngine_ConfigIsCopied(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	engine := newTestEngine(t, cfg)

	cfg.PerReferenceN = 99
	engine.Config().PerReferenceN = 42

	if got := engine.Config().PerReferenceN; got != DefaultN {
		t.Errorf("PerReferenceN = %d, want %d", got, DefaultN)
	}
}

func TestEngine_RecommendForUser_Scenarios(t *testing.T) {
	t.Parallel()

	movies, genres := abcCatalog()

	tests := []struct {
		name    string
		ratings []Rating
		user    string
		want    []string
	}{
		{name: "no ratings", user: "u1", want: []string{"B", "C", "A"}},
		{name: "rated B", user: "u1", ratings: []Rating{{UserID: "u1", MovieID: "B"}}, want: []string{"C", "A"}},
		{name: "other user's rating ignored", user: "u1", ratings: []Rating{{UserID: "u2", MovieID: "B"}}, want: []string{"B", "C", "A"}},
		{
			name:    "everything rated",
			user:    "u1",
			ratings: []Rating{{UserID: "u1", MovieID: "A"}, {UserID: "u1", MovieID: "B"}, {UserID: "u1", MovieID: "C"}},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := newTestEngine(t, nil)
			res, err := engine.RecommendForUser(context.Background(), Input{
				Catalog: movies,
				Genres:  genres,
				Ratings: tt.ratings,
				UserID:  tt.user,
			})
			if err != nil {
				t.Fatalf("RecommendForUser() error = %v", err)
			}

			if got := movieIDs(res.Movies); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RecommendForUser() = %v, want %v", got, tt.want)
			}
			if res.References != 3 {
				t.Errorf("References = %d, want 3", res.References)
			}
			if res.Comparisons != 6 {
				t.Errorf("Comparisons = %d, want 6", res.Comparisons)
			}
		})
	}
}

func TestEngine_RecommendForUser_EmptyCatalog(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)
	res, err := engine.RecommendForUser(context.Background(), Input{UserID: "u1"})
	if err != nil {
		t.Fatalf("RecommendForUser() error = %v", err)
	}
	if len(res.Movies) != 0 {
		t.Errorf("Movies = %v, want empty", movieIDs(res.Movies))
	}
	if res.Movies == nil {
		t.Error("Movies is nil, want empty slice")
	}
}

func TestEngine_RecommendForUser_NoDuplicates(t *testing.T) {
	t.Parallel()

	movies, genres := syntheticCatalog(60)
	ratings := []Rating{
		{UserID: "u1", MovieID: "m001"},
		{UserID: "u1", MovieID: "m010"},
		{UserID: "u1", MovieID: "m033"},
	}

	engine := newTestEngine(t, nil)
	res, err := engine.RecommendForUser(context.Background(), Input{
		Catalog: movies, Genres: genres, Ratings: ratings, UserID: "u1",
	})
	if err != nil {
		t.Fatalf("RecommendForUser() error = %v", err)
	}

	seen := make(map[string]bool)
	for _, m := range res.Movies {
		if seen[m.ID] {
			t.Errorf("duplicate movie %s in result", m.ID)
		}
		seen[m.ID] = true
		for _, r := range ratings {
			if r.MovieID == m.ID {
				t.Errorf("rated movie %s in result", m.ID)
			}
		}
	}

	if len(res.Movies) > len(movies)-len(ratings) {
		t.Errorf("len(Movies) = %d exceeds eligible catalog", len(res.Movies))
	}
}

func TestEngine_RecommendForUser_FirstSeenOrder(t *testing.T) {
	t.Parallel()

	movies, genres := syntheticCatalog(25)
	engine := newTestEngine(t, nil)

	res, err := engine.RecommendForUser(context.Background(), Input{Catalog: movies, Genres: genres, UserID: "u"})
	if err != nil {
		t.Fatalf("RecommendForUser() error = %v", err)
	}

	// Rebuild the expected order reference by reference.
	enc := EncodeGenres(movies, genres)
	var want []string
	seen := make(map[string]bool)
	for _, ref := range movies {
		ranked, err := Rank(ref, movies, enc, nil, DefaultN)
		if err != nil {
			t.Fatalf("Rank() error = %v", err)
		}
		for _, c := range ranked {
			if !seen[c.Movie.ID] {
				seen[c.Movie.ID] = true
				want = append(want, c.Movie.ID)
			}
		}
	}

	if got := movieIDs(res.Movies); !reflect.DeepEqual(got, want) {
		t.Errorf("RecommendForUser() = %v, want %v", got, want)
	}
}

func TestEngine_RecommendForUser_ParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	movies, genres := syntheticCatalog(80)
	ratings := []Rating{{UserID: "u1", MovieID: "m002"}, {UserID: "u1", MovieID: "m050"}}
	in := Input{Catalog: movies, Genres: genres, Ratings: ratings, UserID: "u1"}

	seq := newTestEngine(t, DefaultConfig())
	want, err := seq.RecommendForUser(context.Background(), in)
	if err != nil {
		t.Fatalf("sequential RecommendForUser() error = %v", err)
	}

	for _, workers := range []int{2, 4, 16, 200} {
		cfg := DefaultConfig()
		cfg.Workers = workers
		par := newTestEngine(t, cfg)

		got, err := par.RecommendForUser(context.Background(), in)
		if err != nil {
			t.Fatalf("workers=%d: RecommendForUser() error = %v", workers, err)
		}
		if !reflect.DeepEqual(movieIDs(got.Movies), movieIDs(want.Movies)) {
			t.Errorf("workers=%d: result differs from sequential run", workers)
		}
	}
}

func TestEngine_RecommendForUser_Canceled(t *testing.T) {
	t.Parallel()

	movies, genres := syntheticCatalog(30)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		cfg := DefaultConfig()
		cfg.Workers = workers
		engine := newTestEngine(t, cfg)

		_, err := engine.RecommendForUser(ctx, Input{Catalog: movies, Genres: genres, UserID: "u"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("workers=%d: error = %v, want context.Canceled", workers, err)
		}
	}
}

func TestEngine_RecommendForUser_ZeroVectors(t *testing.T) {
	t.Parallel()

	movies, genres := abcCatalog()
	movies = append(movies, Movie{ID: "D"}, Movie{ID: "E", Genres: []string{"Western"}})

	var buf bytes.Buffer
	engine, err := NewEngine(nil, zerolog.New(&buf).Level(zerolog.DebugLevel))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	res, err := engine.RecommendForUser(context.Background(), Input{Catalog: movies, Genres: genres, UserID: "u"})
	if err != nil {
		t.Fatalf("RecommendForUser() error = %v", err)
	}

	if res.ZeroVectors != 2 {
		t.Errorf("ZeroVectors = %d, want 2", res.ZeroVectors)
	}
	if !strings.Contains(buf.String(), "no recognized genres") {
		t.Errorf("expected zero vector debug log, got: %s", buf.String())
	}
}

func TestEngine_RecommendForUser_LargeCatalogWarning(t *testing.T) {
	t.Parallel()

	movies, genres := syntheticCatalog(12)
	cfg := DefaultConfig()
	cfg.LargeCatalogWarning = 10

	var buf bytes.Buffer
	engine, err := NewEngine(cfg, zerolog.New(&buf).Level(zerolog.WarnLevel))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	if _, err := engine.RecommendForUser(context.Background(), Input{Catalog: movies, Genres: genres}); err != nil {
		t.Fatalf("RecommendForUser() error = %v", err)
	}
	if !strings.Contains(buf.String(), "quadratically") {
		t.Errorf("expected large catalog warning, got: %s", buf.String())
	}
}

func TestEngine_SimilarTo(t *testing.T) {
	t.Parallel()

	movies, genres := abcCatalog()
	ratings := []Rating{{UserID: "u1", MovieID: "B"}}

	cfg := DefaultConfig()
	cfg.MaxN = 5
	engine := newTestEngine(t, cfg)

	tests := []struct {
		name    string
		in      SimilarInput
		want    []string
		wantErr error
	}{
		{
			name: "without user",
			in:   SimilarInput{Catalog: movies, Genres: genres, Ratings: ratings, MovieID: "A", N: 2},
			want: []string{"B", "C"},
		},
		{
			name: "with user filter",
			in:   SimilarInput{Catalog: movies, Genres: genres, Ratings: ratings, MovieID: "A", UserID: "u1", N: 2},
			want: []string{"C"},
		},
		{
			name: "n is capped by max n",
			in:   SimilarInput{Catalog: movies, Genres: genres, MovieID: "C", N: 500},
			want: []string{"A", "B"},
		},
		{
			name:    "unknown movie",
			in:      SimilarInput{Catalog: movies, Genres: genres, MovieID: "Z"},
			wantErr: ErrMovieNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := engine.SimilarTo(context.Background(), tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SimilarTo() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SimilarTo() error = %v", err)
			}
			if ids := candidateIDs(got); !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("SimilarTo() = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestResult_Recommendations(t *testing.T) {
	t.Parallel()

	res := &Result{Movies: []Movie{
		{ID: "1", Title: "One", VideoURL: "http://v/1", Genres: []string{"Drama"}},
		{ID: "2", Title: "Two", VideoURL: "http://v/2"},
	}}

	want := []Recommendation{
		{Title: "One", VideoURL: "http://v/1"},
		{Title: "Two", VideoURL: "http://v/2"},
	}
	if got := res.Recommendations(); !reflect.DeepEqual(got, want) {
		t.Errorf("Recommendations() = %v, want %v", got, want)
	}

	empty := (&Result{}).Recommendations()
	if empty == nil || len(empty) != 0 {
		t.Errorf("Recommendations() on empty result = %v, want empty slice", empty)
	}
}
