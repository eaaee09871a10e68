// SPDX-License-Identifier: MIT
// Package: tarjan/builder
//
// impl_complete.go - complete-graph emission with per-pair arg-min mode.
//
// Contract:
//   • Emits each unordered pair {i,j} with i<j exactly once, in lexicographic
//     (i,j) order over the resolved node list.
//   • Pairs with identical coordinates are skipped (no zero-weight edge).
//   • Weight = min over modes of metric.Metric(distance, mode, kind); the
//     first mode (caller order) achieving the minimum labels the edge.
//
// Complexity:
//   • Time: O(n²·m) for n nodes and m modes.
//   • Space: O(1) beyond the graph itself.

package builder

import (
	"github.com/katalvlaran/tarjan/core"
	"github.com/katalvlaran/tarjan/metric"
)

// complete fills g with the arg-min edges of every coordinate-distinct pair.
func complete(g *core.Graph, nodes []core.Location, modes []core.TransportMode, kind metric.Kind, cfg builderConfig) error {
	var (
		n        = len(nodes)
		i, j     int
		u, v     core.Location
		dist     float64
		best     float64
		bestMode string
		err      error
	)
	for i = 0; i < n; i++ {
		u = nodes[i]
		for j = i + 1; j < n; j++ {
			v = nodes[j]
			if u.SameCoordinates(v) {
				cfg.pairSkipped(u.ID, v.ID)
				continue
			}

			dist = cfg.distFn(u.Point(), v.Point())
			best, bestMode, err = argMinMode(dist, modes, kind)
			if err != nil {
				return builderErrorf(methodBuild, "%s–%s: %w", u.ID, v.ID, err)
			}
			if err = g.SetEdge(u.ID, v.ID, best, bestMode); err != nil {
				return builderErrorf(methodBuild, "SetEdge(%s,%s): %w", u.ID, v.ID, err)
			}

			e, _ := g.Edge(u.ID, v.ID)
			cfg.edgeAdded(e, dist)
		}
	}

	return nil
}

// argMinMode evaluates every mode and keeps the strictly smaller metric, so
// the earliest mode wins ties.
func argMinMode(dist float64, modes []core.TransportMode, kind metric.Kind) (float64, string, error) {
	var (
		best     float64
		bestMode string
		value    float64
		err      error
		k        int
	)
	for k = range modes {
		value, err = metric.Metric(dist, modes[k], kind)
		if err != nil {
			return 0, "", err
		}
		if k == 0 || value < best {
			best, bestMode = value, modes[k].Name
		}
	}

	return best, bestMode, nil
}
