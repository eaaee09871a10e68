// SPDX-License-Identifier: MIT
// Package: tarjan/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • distFn = geo.Distance
//   • onEdge = nil (no-op)
//   • onSkip = nil (no-op)

package builder

import (
	"github.com/katalvlaran/tarjan/core"
	"github.com/katalvlaran/tarjan/geo"
)

// builderConfig aggregates all knobs used by Build.
// It is passed by VALUE (immutable to callers).
type builderConfig struct {
	// Distance between two points in kilometers.
	distFn func(a, b geo.Point) float64
	// Called after each edge is recorded, with the pair distance.
	onEdge func(e core.Edge, distanceKm float64)
	// Called for each coordinate-duplicate pair that gets no edge.
	onSkip func(u, v string)
}

// newBuilderConfig applies options in order (last wins) over the defaults.
// Complexity: O(len(opts)).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{distFn: geo.Distance}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func (c builderConfig) edgeAdded(e core.Edge, d float64) {
	if c.onEdge != nil {
		c.onEdge(e, d)
	}
}

func (c builderConfig) pairSkipped(u, v string) {
	if c.onSkip != nil {
		c.onSkip(u, v)
	}
}
