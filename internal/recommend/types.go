// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import "time"

// Genre is an entry of the genre vocabulary.
type Genre struct {
	// Name identifies the genre. Names must be unique within a vocabulary.
	Name string `json:"name"`
}

// Movie is a catalog entry.
type Movie struct {
	// ID is the opaque, unique movie identifier.
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// VideoURL locates the movie's video.
	VideoURL string `json:"video_url"`

	// Genres lists the genre names attached to the movie. Names missing
	// from the vocabulary are ignored during encoding.
	Genres []string `json:"genres"`
}

// Rating records that a user rated a movie.
type Rating struct {
	// UserID is the rating user's identifier.
	UserID string `json:"user_id"`

	// MovieID is the rated movie's identifier.
	MovieID string `json:"movie_id"`

	// Value is the rating score. It is carried for completeness only.
	Value float64 `json:"value,omitempty"`
}

// Candidate pairs a movie with its similarity to a reference movie.
type Candidate struct {
	Movie Movie   `json:"movie"`
	Score float64 `json:"score"`
}

// Recommendation is the presentation form of a recommended movie.
type Recommendation struct {
	Title    string `json:"title"`
	VideoURL string `json:"video_url"`
}

// Input holds the materialized data for one recommendation request.
type Input struct {
	// Catalog is the full movie catalog. Its order drives tie-breaking.
	Catalog []Movie

	// Genres is the genre vocabulary. Its order defines vector positions.
	Genres []Genre

	// Ratings is the rating history of all users.
	Ratings []Rating

	// UserID is the user to recommend for.
	UserID string
}

// SimilarInput holds the data for a single-reference similarity request.
type SimilarInput struct {
	Catalog []Movie
	Genres  []Genre
	Ratings []Rating

	// UserID filters out movies this user already rated. Empty disables
	// the filter.
	UserID string

	// MovieID is the reference movie.
	MovieID string

	// N caps the number of returned candidates. Zero uses the engine default.
	N int
}

// Result is the outcome of RecommendForUser.
type Result struct {
	// Movies is the deduplicated, first-seen ordered recommendation list.
	Movies []Movie `json:"movies"`

	// References is the number of reference movies ranked.
	References int `json:"references"`

	// Comparisons is the number of pairwise similarity computations.
	Comparisons int `json:"comparisons"`

	// ZeroVectors is the number of catalog movies with no recognized genre.
	ZeroVectors int `json:"zero_vectors"`

	// Elapsed is the wall-clock time spent in the engine.
	Elapsed time.Duration `json:"elapsed"`
}

// Recommendations projects the result movies to their presentation form.
func (r *Result) Recommendations() []Recommendation {
	recs := make([]Recommendation, 0, len(r.Movies))
	for i := range r.Movies {
		recs = append(recs, Recommendation{
			Title:    r.Movies[i].Title,
			VideoURL: r.Movies[i].VideoURL,
		})
	}
	return recs
}
