// Package metric converts a travel distance and a transport mode into the
// scalar the planner optimizes: minutes (Time) or money (Cost).
//
//	Time: distance_km / speed_kmh · 60 + transfer_time_min
//	Cost: cost_per_km · distance_km
//
// Both formulas are affine in distance with non-negative slope, so Metric is
// non-decreasing in distance for a fixed mode and kind; for any distance
// d ≥ 0, Time ≥ transfer_time_min and Cost ≥ 0.
//
// Errors (sentinel):
//
//	ErrInvalidWeightKind - kind is neither Time nor Cost, or ParseKind got an
//	unknown string (e.g. "distance").
package metric
