// Package geo computes geodesic distances between latitude/longitude points.
//
// Distance solves the inverse geodesic problem on the WGS-84 ellipsoid with
// Vincenty's iterative formula. Vincenty does not converge for nearly
// antipodal points; in that case the great-circle (haversine) distance on the
// mean Earth radius is returned instead, so every call yields a finite,
// non-negative result for finite input.
//
// Guarantees:
//   - Symmetric and bit-stable: Distance(a,b) == Distance(b,a) for every a, b,
//     because the pair is put into a canonical order before any arithmetic.
//   - Distance(a,a) == 0 exactly.
//   - Latitudes outside [-90,90] are clamped and longitudes are wrapped into
//     [-180,180) before computing; Validate reports such points as errors so
//     callers that need strict input can reject them up front.
//
// Complexity: O(1) per call (the Vincenty loop is capped at maxIterations).
package geo
