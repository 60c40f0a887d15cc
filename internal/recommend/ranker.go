// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"sort"
)

// DefaultN is the number of candidates Rank returns when n is not positive.
const DefaultN = 5

// RatedSet returns the IDs of movies rated by userID.
func RatedSet(ratings []Rating, userID string) map[string]struct{} {
	rated := make(map[string]struct{})
	for i := range ratings {
		if ratings[i].UserID == userID {
			rated[ratings[i].MovieID] = struct{}{}
		}
	}
	return rated
}

// Rank returns up to n catalog movies most similar to reference.
//
// The reference itself is never a candidate. Candidates are sorted by
// descending similarity with catalog order breaking ties, then movies in
// rated are dropped before the list is cut to n.
func Rank(reference Movie, catalog []Movie, enc *Encoding, rated map[string]struct{}, n int) ([]Candidate, error) {
	scored, err := scoreAgainst(reference, catalog, enc)
	if err != nil {
		return nil, err
	}
	return topN(scored, rated, n), nil
}

// scoreAgainst scores every catalog movie except the reference and returns
// the candidates sorted by descending score.
func scoreAgainst(reference Movie, catalog []Movie, enc *Encoding) ([]Candidate, error) {
	refVec := enc.lookup(reference.ID)

	candidates := make([]Candidate, 0, len(catalog))
	for i := range catalog {
		if catalog[i].ID == reference.ID {
			continue
		}

		score, err := CosineSimilarity(refVec, enc.lookup(catalog[i].ID))
		if err != nil {
			return nil, fmt.Errorf("score %q against %q: %w", reference.ID, catalog[i].ID, err)
		}

		candidates = append(candidates, Candidate{Movie: catalog[i], Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates, nil
}

// topN keeps the first n candidates not present in rated.
func topN(sorted []Candidate, rated map[string]struct{}, n int) []Candidate {
	if n <= 0 {
		n = DefaultN
	}

	out := make([]Candidate, 0, min(n, len(sorted)))
	for _, c := range sorted {
		if _, seen := rated[c.Movie.ID]; seen {
			continue
		}
		out = append(out, c)
		if len(out) == n {
			break
		}
	}
	return out
}
