// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"github.com/tomtom215/cinematch/internal/recommend"
)

// LegacyUnavailableMessage is the body message of the legacy route when the
// catalog service cannot be reached.
const LegacyUnavailableMessage = "No se pudieron obtener datos de las APIs"

// LegacyMovie is one entry of the legacy recommendation list.
type LegacyMovie struct {
	Titulo   string `json:"titulo"`
	VideoURL string `json:"videoUrl"`
}

// LegacyRecommendations is the body of GET /recomendar/{userID}.
type LegacyRecommendations struct {
	PeliculasRecomendadas []LegacyMovie `json:"peliculas_recomendadas"`
}

// LegacyError is the error body of GET /recomendar/{userID}.
type LegacyError struct {
	Error string `json:"error"`
}

// NewLegacyRecommendations converts recommendations to the legacy shape.
// The list is never nil so it encodes as [] rather than null.
func NewLegacyRecommendations(recs []recommend.Recommendation) LegacyRecommendations {
	out := LegacyRecommendations{PeliculasRecomendadas: make([]LegacyMovie, 0, len(recs))}
	for _, r := range recs {
		out.PeliculasRecomendadas = append(out.PeliculasRecomendadas, LegacyMovie{
			Titulo:   r.Title,
			VideoURL: r.VideoURL,
		})
	}
	return out
}

// UserRecommendations is the data payload of the user recommendation endpoint.
type UserRecommendations struct {
	UserID          string                     `json:"user_id"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Count           int                        `json:"count"`
	CatalogSize     int                        `json:"catalog_size"`
	Comparisons     int                        `json:"comparisons"`
}

// SimilarMovie is a ranked movie with its cosine similarity to the reference.
type SimilarMovie struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	VideoURL string   `json:"video_url"`
	Genres   []string `json:"genres"`
	Score    float64  `json:"score"`
}

// SimilarMovies is the data payload of the similar movies endpoint.
type SimilarMovies struct {
	MovieID string         `json:"movie_id"`
	UserID  string         `json:"user_id,omitempty"`
	Results []SimilarMovie `json:"results"`
	Count   int            `json:"count"`
}

// NewSimilarMovies converts ranked candidates to the response payload.
func NewSimilarMovies(movieID, userID string, candidates []recommend.Candidate) SimilarMovies {
	out := SimilarMovies{
		MovieID: movieID,
		UserID:  userID,
		Results: make([]SimilarMovie, 0, len(candidates)),
	}
	for i := range candidates {
		m := candidates[i].Movie
		genres := m.Genres
		if genres == nil {
			genres = []string{}
		}
		out.Results = append(out.Results, SimilarMovie{
			ID:       m.ID,
			Title:    m.Title,
			VideoURL: m.VideoURL,
			Genres:   genres,
			Score:    candidates[i].Score,
		})
	}
	out.Count = len(out.Results)
	return out
}
