// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

// abcCatalog is the Action/Comedy/Drama scenario used across tests.
func abcCatalog() ([]Movie, []Genre) {
	movies := []Movie{
		{ID: "A", Title: "Alpha", VideoURL: "http://v/a", Genres: []string{"Action"}},
		{ID: "B", Title: "Bravo", VideoURL: "http://v/b", Genres: []string{"Action", "Comedy"}},
		{ID: "C", Title: "Charlie", VideoURL: "http://v/c", Genres: []string{"Drama"}},
	}
	return movies, vocabulary("Action", "Comedy", "Drama")
}

func candidateIDs(cs []Candidate) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.Movie.ID
	}
	return ids
}

func TestRank_ScenarioNoRatings(t *testing.T) {
	t.Parallel()

	movies, genres := abcCatalog()
	enc := EncodeGenres(movies, genres)

	got, err := Rank(movies[0], movies, enc, RatedSet(nil, "u1"), 2)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("len(Rank()) = %d, want 2", len(got))
	}
	if got[0].Movie.ID != "B" || got[1].Movie.ID != "C" {
		t.Fatalf("Rank() = %v, want [B C]", candidateIDs(got))
	}
	if math.Abs(got[0].Score-0.7071) > 1e-3 {
		t.Errorf("score(B) = %v, want ~0.707", got[0].Score)
	}
	if got[1].Score != 0 {
		t.Errorf("score(C) = %v, want 0", got[1].Score)
	}
}

func TestRank_ScenarioRatedExcluded(t *testing.T) {
	t.Parallel()

	movies, genres := abcCatalog()
	enc := EncodeGenres(movies, genres)
	rated := RatedSet([]Rating{{UserID: "u1", MovieID: "B"}}, "u1")

	got, err := Rank(movies[0], movies, enc, rated, 2)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	if len(got) != 1 || got[0].Movie.ID != "C" {
		t.Errorf("Rank() = %v, want [C]", candidateIDs(got))
	}
}

func TestRank_ZeroGenreMovie(t *testing.T) {
	t.Parallel()

	movies, genres := abcCatalog()
	movies = append(movies, Movie{ID: "D", Title: "Delta"})
	enc := EncodeGenres(movies, genres)

	vec, _ := enc.Vector("D")
	if !isZero(vec) {
		t.Fatalf("Vector(D) = %v, want all zero", vec)
	}

	got, err := Rank(movies[3], movies, enc, nil, 10)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	for _, c := range got {
		if c.Score != 0 {
			t.Errorf("score(D, %s) = %v, want 0", c.Movie.ID, c.Score)
		}
	}
	if ids := candidateIDs(got); len(ids) != 3 || ids[0] != "A" || ids[1] != "B" || ids[2] != "C" {
		t.Errorf("Rank(D) = %v, want catalog order [A B C] for tied scores", ids)
	}
}

func TestRank_Properties(t *testing.T) {
	t.Parallel()

	names := []string{"Action", "Comedy", "Drama", "Horror", "Sci-Fi"}
	genres := vocabulary(names...)

	var movies []Movie
	for i := 0; i < 12; i++ {
		var g []string
		for j, name := range names {
			if (i+1)&(1<<j) != 0 {
				g = append(g, name)
			}
		}
		movies = append(movies, Movie{ID: strconv.Itoa(i), Genres: g})
	}
	enc := EncodeGenres(movies, genres)

	ratings := []Rating{
		{UserID: "u1", MovieID: "1"},
		{UserID: "u1", MovieID: "4"},
		{UserID: "u1", MovieID: "7"},
		{UserID: "u2", MovieID: "2"},
	}
	rated := RatedSet(ratings, "u1")

	for _, n := range []int{1, 3, 5, 8, 20} {
		for _, ref := range movies {
			got, err := Rank(ref, movies, enc, rated, n)
			if err != nil {
				t.Fatalf("Rank() error = %v", err)
			}

			eligible := 0
			for _, m := range movies {
				if _, r := rated[m.ID]; m.ID != ref.ID && !r {
					eligible++
				}
			}
			if want := min(n, eligible); len(got) != want {
				t.Errorf("ref %s n=%d: len = %d, want %d", ref.ID, n, len(got), want)
			}

			for i, c := range got {
				if c.Movie.ID == ref.ID {
					t.Errorf("ref %s: reference included in its own ranking", ref.ID)
				}
				if _, r := rated[c.Movie.ID]; r {
					t.Errorf("ref %s: rated movie %s included", ref.ID, c.Movie.ID)
				}
				if i > 0 && got[i-1].Score < c.Score {
					t.Errorf("ref %s: scores not descending at %d", ref.ID, i)
				}
			}
		}
	}
}

func TestRank_DefaultN(t *testing.T) {
	t.Parallel()

	var movies []Movie
	for i := 0; i < 10; i++ {
		movies = append(movies, Movie{ID: strconv.Itoa(i), Genres: []string{"Drama"}})
	}
	enc := EncodeGenres(movies, vocabulary("Drama"))

	for _, n := range []int{0, -3} {
		got, err := Rank(movies[0], movies, enc, nil, n)
		if err != nil {
			t.Fatalf("Rank() error = %v", err)
		}
		if len(got) != DefaultN {
			t.Errorf("Rank(n=%d) returned %d candidates, want %d", n, len(got), DefaultN)
		}
	}
}

func TestRank_StableTieBreak(t *testing.T) {
	t.Parallel()

	movies := []Movie{
		{ID: "ref", Genres: []string{"Action"}},
		{ID: "z", Genres: []string{"Action"}},
		{ID: "y", Genres: []string{"Action", "Drama"}},
		{ID: "x", Genres: []string{"Action"}},
		{ID: "w", Genres: []string{"Action", "Drama"}},
	}
	enc := EncodeGenres(movies, vocabulary("Action", "Drama"))

	got, err := Rank(movies[0], movies, enc, nil, 10)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	want := []string{"z", "x", "y", "w"}
	ids := candidateIDs(got)
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("Rank() = %v, want %v", ids, want)
		}
	}
}

func TestRank_EmptyCatalog(t *testing.T) {
	t.Parallel()

	enc := EncodeGenres(nil, vocabulary("Action"))
	got, err := Rank(Movie{ID: "a"}, nil, enc, nil, 5)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Rank() = %v, want empty", candidateIDs(got))
	}
}

func TestRank_DimensionMismatch(t *testing.T) {
	t.Parallel()

	movies, _ := abcCatalog()
	enc := EncodeGenres(movies, vocabulary("Action", "Comedy", "Drama"))
	enc.vectors["B"] = Vector{1}

	_, err := Rank(movies[0], movies, enc, nil, 2)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Rank() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestRatedSet(t *testing.T) {
	t.Parallel()

	ratings := []Rating{
		{UserID: "1", MovieID: "10", Value: 4},
		{UserID: "1", MovieID: "11", Value: 2},
		{UserID: "2", MovieID: "12", Value: 5},
		{UserID: "10", MovieID: "13", Value: 5},
		{UserID: "1", MovieID: "10", Value: 3},
	}

	tests := []struct {
		user string
		want []string
	}{
		{user: "1", want: []string{"10", "11"}},
		{user: "2", want: []string{"12"}},
		{user: "10", want: []string{"13"}},
		{user: "3", want: nil},
		{user: "", want: nil},
	}

	for _, tt := range tests {
		t.Run("user_"+tt.user, func(t *testing.T) {
			t.Parallel()

			got := RatedSet(ratings, tt.user)
			if len(got) != len(tt.want) {
				t.Fatalf("len(RatedSet(%q)) = %d, want %d", tt.user, len(got), len(tt.want))
			}
			for _, id := range tt.want {
				if _, ok := got[id]; !ok {
					t.Errorf("RatedSet(%q) missing %q", tt.user, id)
				}
			}
		})
	}
}
