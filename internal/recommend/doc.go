// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

// Package recommend implements the feature-vector scoring engine.
//
// # Architecture
//
// A query is a FeatureVector with 0/1 weights over the profile dimensions.
// Only active (nonzero) dimensions take part in scoring; inactive ones are
// left out of the expression entirely. The engine turns a Request into a
// declarative ScoreSpec (algorithm, active terms with their group weights,
// normalization constants, price range, exclusions, limit) and hands it to
// a CatalogReader, which evaluates it against stored product features.
//
// # Algorithm Families
//
// The normalized family is canonical:
//
//   - linear: sum of w_d * f_d/N
//   - cosine: sum(f_d/N) / (sqrt(k) * sqrt(sum((f_d/N)^2) + eps))
//   - inverse_distance: 1 / (1 + sqrt(sum w_d * (f_d/N - 1)^2))
//
// The legacy family reproduces the earlier multiplicative formulas over raw
// magnitudes offset by 0.1. Either family can be compared side by side in a
// blind test.
//
// # Guarantees
//
//   - A query without active dimensions returns an empty result and never
//     reaches the catalog.
//   - Price bounds are inclusive; excluded ids never appear.
//   - Results are ordered by descending score, ties by ascending product id.
//   - A catalog error aborts the query with *StorageError; partial results
//     are never returned.
//
// Score evaluates a ScoreSpec in process and is the reference the database
// compiler is tested against.
package recommend
