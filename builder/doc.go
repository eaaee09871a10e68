// Package builder turns a set of locations and transport modes into the
// complete weighted graph the route solver searches.
//
// For every unordered pair of nodes with distinct coordinates the builder
// measures the geodesic distance, evaluates the metric of every transport
// mode, and records a single edge carrying the minimum metric and the name of
// the mode that achieved it.
//
// The package offers:
//
//   - Build:             the one public entry point.
//   - BuilderOption:     functional options resolved into builderConfig.
//   - WithOnEdge/WithOnSkip: observability hooks, called synchronously in
//     pair-emission order; correctness never depends on them.
//   - WithDistanceFunc:  replace geo.Distance (tests, alternate geodesics).
//
// Guarantees:
//
//   - Completeness: every coordinate-distinct pair gets exactly one edge;
//     coordinate-duplicate pairs get none.
//   - Arg-min: edge weight is the minimum metric over modes; ties go to the
//     mode that appears first in the caller's slice.
//   - Determinism: node order is home first, then locations in caller order;
//     pairs are emitted lexicographically by (i,j), i<j.
//   - Purity: inputs are never mutated; on error no graph is returned.
//
// See errors.go for the validation order and sentinels.
package builder
