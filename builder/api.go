// SPDX-License-Identifier: MIT
// Package: tarjan/builder
//
// api.go - public entry point.
//
// Design contract:
//   - One orchestrator: Build(locations, home, modes, kind, opts...).
//   - Validation happens before a graph is allocated; nothing partial leaks.
//   - Determinism: equal inputs (including slice orders) ⇒ identical graphs.

package builder

import (
	"github.com/katalvlaran/tarjan/core"
	"github.com/katalvlaran/tarjan/metric"
)

// Build creates the complete weighted graph over home (optional) and
// locations, weighting each edge by the minimum metric across modes.
//
// Steps:
//  1. Validate kind, modes and nodes (see errors.go for the priority order).
//  2. Insert nodes: home first when non-nil, then locations in order.
//  3. Emit every pair (i<j); skip coordinate duplicates; record arg-min edges.
//
// Complexity:
//   - Time:  O(V² · M) for V nodes and M modes.
//   - Space: O(V²) edges.
//
// Errors: ErrInvalidWeightKind, ErrEmptyTransportModes, ErrInvalidTransportMode,
// ErrDuplicateTransportMode, ErrEmptyLocationID, ErrDuplicateLocation,
// ErrCoordinateOutOfRange, ErrEmptyNodeSet, always wrapped with context.
func Build(
	locations []core.Location,
	home *core.Location,
	modes []core.TransportMode,
	kind metric.Kind,
	opts ...BuilderOption,
) (*core.Graph, error) {
	// Stage 1: validation.
	if err := validateKind(kind); err != nil {
		return nil, err
	}
	if err := validateModes(modes); err != nil {
		return nil, err
	}
	nodes := resolveNodes(locations, home)
	if err := validateNodes(nodes); err != nil {
		return nil, err
	}

	// Stage 2/3: construction.
	cfg := newBuilderConfig(opts...)
	g := core.NewGraph()
	for _, loc := range nodes {
		if err := g.AddNode(loc); err != nil {
			return nil, builderErrorf(methodBuild, "AddNode(%s): %w", loc.ID, err)
		}
	}
	if err := complete(g, nodes, modes, kind, cfg); err != nil {
		return nil, err
	}

	return g, nil
}

// resolveNodes returns a fresh slice: home (if any) followed by locations.
// The caller's slice is never aliased.
func resolveNodes(locations []core.Location, home *core.Location) []core.Location {
	nodes := make([]core.Location, 0, len(locations)+1)
	if home != nil {
		nodes = append(nodes, *home)
	}

	return append(nodes, locations...)
}
