// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package upstream

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// ID is an identifier that the catalog service may encode as a JSON number
// or a JSON string. Both decode to the same decimal string, so 7 and "7"
// name the same movie.
type ID string

// UnmarshalJSON accepts numbers, strings and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	s := string(data)
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		*id = ID(s)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("decode id %s: not a number or string", data)
	}
	// 7.0 and 7 must name the same movie.
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		*id = ID(strconv.FormatInt(int64(f), 10))
		return nil
	}
	*id = ID(s)
	return nil
}

// pelicula is a movie as served by the catalog service.
type pelicula struct {
	ID       ID       `json:"id"`
	Titulo   string   `json:"titulo"`
	VideoURL string   `json:"videoUrl"`
	Generos  []genero `json:"generos"`
}

// genero is a genre entry. Only the name is used for encoding.
type genero struct {
	ID     ID     `json:"id,omitempty"`
	Nombre string `json:"nombre"`
}

// rating links a user to a movie they rated.
type rating struct {
	UsuarioID  ID      `json:"usuarioId"`
	PeliculaID ID      `json:"peliculaId"`
	Puntuacion float64 `json:"puntuacion,omitempty"`
}

func (p *pelicula) toMovie() recommend.Movie {
	genres := make([]string, 0, len(p.Generos))
	for _, g := range p.Generos {
		genres = append(genres, g.Nombre)
	}
	return recommend.Movie{
		ID:       string(p.ID),
		Title:    p.Titulo,
		VideoURL: p.VideoURL,
		Genres:   genres,
	}
}

func toMovies(in []pelicula) []recommend.Movie {
	out := make([]recommend.Movie, len(in))
	for i := range in {
		out[i] = in[i].toMovie()
	}
	return out
}

func toGenres(in []genero) []recommend.Genre {
	out := make([]recommend.Genre, len(in))
	for i, g := range in {
		out[i] = recommend.Genre{Name: g.Nombre}
	}
	return out
}

func toRatings(in []rating) []recommend.Rating {
	out := make([]recommend.Rating, len(in))
	for i, r := range in {
		out[i] = recommend.Rating{
			UserID:  string(r.UsuarioID),
			MovieID: string(r.PeliculaID),
			Value:   r.Puntuacion,
		}
	}
	return out
}

// Dataset is one consistent snapshot of the three upstream collections.
type Dataset struct {
	Movies  []recommend.Movie
	Genres  []recommend.Genre
	Ratings []recommend.Rating
}
