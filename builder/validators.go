// SPDX-License-Identifier: MIT
// Package: tarjan/builder
//
// validators.go - input contracts for Build, checked in the priority order
// documented in errors.go. All functions are pure and O(n).

package builder

import (
	"github.com/katalvlaran/tarjan/core"
	"github.com/katalvlaran/tarjan/geo"
	"github.com/katalvlaran/tarjan/metric"
)

// minDistinctNodes is the smallest node set that admits an edge.
const minDistinctNodes = 2

// validateKind rejects anything but metric.Time / metric.Cost.
func validateKind(kind metric.Kind) error {
	if !kind.Valid() {
		return builderErrorf(methodBuild, "kind=%v: %w", kind, ErrInvalidWeightKind)
	}

	return nil
}

// validateModes enforces a non-empty list of valid, uniquely named modes.
func validateModes(modes []core.TransportMode) error {
	if len(modes) == 0 {
		return builderErrorf(methodBuild, "%w", ErrEmptyTransportModes)
	}
	seen := make(map[string]struct{}, len(modes))
	for i, m := range modes {
		if err := m.Validate(); err != nil {
			return builderErrorf(methodBuild, "mode[%d]: %w", i, err)
		}
		if _, ok := seen[m.Name]; ok {
			return builderErrorf(methodBuild, "mode %q: %w", m.Name, ErrDuplicateTransportMode)
		}
		seen[m.Name] = struct{}{}
	}

	return nil
}

// validateNodes checks IDs and coordinates of the resolved node list and
// counts coordinate-distinct nodes.
func validateNodes(nodes []core.Location) error {
	var (
		ids      = make(map[string]struct{}, len(nodes))
		points   = make(map[geo.Point]struct{}, len(nodes))
		ok       bool
		loc      core.Location
		err      error
		position int
	)
	for position, loc = range nodes {
		if loc.ID == "" {
			return builderErrorf(methodBuild, "node[%d]: %w", position, ErrEmptyLocationID)
		}
		if _, ok = ids[loc.ID]; ok {
			return builderErrorf(methodBuild, "%q: %w", loc.ID, ErrDuplicateLocation)
		}
		ids[loc.ID] = struct{}{}

		if err = geo.Validate(loc.Point()); err != nil {
			return builderErrorf(methodBuild, "%q: %w: %w", loc.ID, ErrCoordinateOutOfRange, err)
		}
		points[loc.Point()] = struct{}{}
	}
	if len(points) < minDistinctNodes {
		return builderErrorf(methodBuild, "%d distinct of %d nodes: %w", len(points), len(nodes), ErrEmptyNodeSet)
	}

	return nil
}
