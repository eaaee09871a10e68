// SPDX-License-Identifier: MIT
// Package: tarjan/builder
//
// options.go - functional options for Build.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless input (nil funcs).
//   • Build itself never panics on user input.

package builder

import (
	"github.com/katalvlaran/tarjan/core"
	"github.com/katalvlaran/tarjan/geo"
)

// BuilderOption customizes Build by mutating a builderConfig.
type BuilderOption func(*builderConfig)

// WithDistanceFunc replaces geo.Distance. fn must be symmetric, deterministic
// and return non-negative kilometers. Panics on nil.
func WithDistanceFunc(fn func(a, b geo.Point) float64) BuilderOption {
	if fn == nil {
		panic("builder: WithDistanceFunc(nil)")
	}
	return func(c *builderConfig) { c.distFn = fn }
}

// WithOnEdge registers a hook called after every recorded edge.
// Panics on nil.
func WithOnEdge(fn func(e core.Edge, distanceKm float64)) BuilderOption {
	if fn == nil {
		panic("builder: WithOnEdge(nil)")
	}
	return func(c *builderConfig) { c.onEdge = fn }
}

// WithOnSkip registers a hook called for every coordinate-duplicate pair.
// Panics on nil.
func WithOnSkip(fn func(u, v string)) BuilderOption {
	if fn == nil {
		panic("builder: WithOnSkip(nil)")
	}
	return func(c *builderConfig) { c.onSkip = fn }
}
