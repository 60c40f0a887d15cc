// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

// Vector is a binary genre membership vector. Position i is 1 when the
// genre at vocabulary index i is attached to the movie, 0 otherwise.
type Vector []float64

// Encoding maps movie IDs to genre vectors built against one vocabulary.
// It is immutable once returned by EncodeGenres.
type Encoding struct {
	dims    int
	vectors map[string]Vector
}

// EncodeGenres builds genre membership vectors for every movie.
//
// The vocabulary index is built in a single pass over genres; when a name
// appears twice the later position wins. Genre names on a movie that are
// not in the vocabulary are ignored. Neither input is modified.
func EncodeGenres(movies []Movie, genres []Genre) *Encoding {
	index := make(map[string]int, len(genres))
	for i, g := range genres {
		index[g.Name] = i
	}

	enc := &Encoding{
		dims:    len(genres),
		vectors: make(map[string]Vector, len(movies)),
	}

	for i := range movies {
		vec := make(Vector, len(genres))
		for _, name := range movies[i].Genres {
			if pos, ok := index[name]; ok {
				vec[pos] = 1
			}
		}
		enc.vectors[movies[i].ID] = vec
	}

	return enc
}

// Dimensions returns the vector length (the vocabulary size).
func (e *Encoding) Dimensions() int {
	return e.dims
}

// Len returns the number of encoded movies.
func (e *Encoding) Len() int {
	return len(e.vectors)
}

// Vector returns a copy of the vector for a movie and whether it was encoded.
func (e *Encoding) Vector(movieID string) (Vector, bool) {
	vec, ok := e.vectors[movieID]
	if !ok {
		return nil, false
	}
	out := make(Vector, len(vec))
	copy(out, vec)
	return out, true
}

// lookup returns the stored vector without copying. Movies that were not
// encoded map to the zero vector.
func (e *Encoding) lookup(movieID string) Vector {
	if vec, ok := e.vectors[movieID]; ok {
		return vec
	}
	return make(Vector, e.dims)
}
