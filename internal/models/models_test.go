// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/recommend"
)

func TestNewLegacyRecommendations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		recs []recommend.Recommendation
		want string
	}{
		{
			name: "empty list encodes as array",
			recs: nil,
			want: `{"peliculas_recomendadas":[]}`,
		},
		{
			name: "legacy field names",
			recs: []recommend.Recommendation{
				{Title: "Alien", VideoURL: "https://v/alien"},
				{Title: "Heat", VideoURL: ""},
			},
			want: `{"peliculas_recomendadas":[{"titulo":"Alien","videoUrl":"https://v/alien"},{"titulo":"Heat","videoUrl":""}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := json.Marshal(NewLegacyRecommendations(tt.recs))
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLegacyError(t *testing.T) {
	t.Parallel()

	got, err := json.Marshal(LegacyError{Error: LegacyUnavailableMessage})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"error":"No se pudieron obtener datos de las APIs"}`
	if string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}

func TestNewSimilarMovies(t *testing.T) {
	t.Parallel()

	candidates := []recommend.Candidate{
		{Movie: recommend.Movie{ID: "2", Title: "B", Genres: []string{"Drama"}}, Score: 1},
		{Movie: recommend.Movie{ID: "3", Title: "C"}, Score: 0.5},
	}

	got := NewSimilarMovies("1", "", candidates)
	if got.Count != 2 || len(got.Results) != 2 {
		t.Fatalf("Count = %d, len(Results) = %d, want 2", got.Count, len(got.Results))
	}
	if got.Results[0].ID != "2" || got.Results[0].Score != 1 {
		t.Errorf("Results[0] = %+v", got.Results[0])
	}
	if got.Results[1].Genres == nil {
		t.Error("Results[1].Genres is nil, want empty slice")
	}

	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := decoded["user_id"]; ok {
		t.Error("user_id should be omitted when empty")
	}

	empty := NewSimilarMovies("1", "7", nil)
	if empty.Results == nil || empty.Count != 0 {
		t.Errorf("empty = %+v, want non-nil empty results", empty)
	}
}
