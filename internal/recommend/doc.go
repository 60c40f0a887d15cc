// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend implements genre-similarity movie recommendations.
//
// # Pipeline
//
// A recommendation request flows through three stages:
//
//   - Encoding: every movie's genre names become a binary membership vector
//     over the genre vocabulary (EncodeGenres).
//   - Scoring: pairs of vectors are compared with cosine similarity
//     (CosineSimilarity).
//   - Ranking: for one reference movie, every other movie is scored, sorted
//     by descending similarity and filtered against the user's rated-set
//     (Rank). The Engine repeats this with every catalog movie as the
//     reference and merges the lists, keeping the first occurrence of each
//     movie.
//
// # Determinism
//
// Equal scores keep catalog order (stable sort), and the merged list keeps
// first-seen order. Parallel ranking (Config.Workers > 1) produces exactly
// the same output as sequential ranking.
//
// # Complexity
//
// Aggregation scores every movie against every other movie, so a request is
// O(|catalog|²). This is acceptable for small catalogs only; the engine logs
// a warning above Config.LargeCatalogWarning.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	res, err := engine.RecommendForUser(ctx, recommend.Input{
//	    Catalog: movies,
//	    Genres:  genres,
//	    Ratings: ratings,
//	    UserID:  "42",
//	})
package recommend
