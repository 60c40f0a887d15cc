// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when two vectors built against different
// vocabularies are compared.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// CosineSimilarity returns dot(a, b) / (|a| * |b|).
//
// If either vector has zero norm the similarity is 0. Genre vectors are
// non-negative, so the result lies in [0, 1].
func CosineSimilarity(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	// A single square root keeps sim(a, a) exactly 1 for binary vectors.
	sim := dot / math.Sqrt(normA*normB)
	if sim > 1 {
		sim = 1
	}
	return sim, nil
}

// isZero reports whether every component of v is zero.
func isZero(v Vector) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
