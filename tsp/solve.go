// File: solve.go
// Role: public entry point. Validates inputs, prefetches weights and
// dispatches to the selected engine.
package tsp

import (
	"fmt"

	"github.com/katalvlaran/tarjan/core"
)

// Solve returns the minimum-weight closed route from home through every
// other node of g.
//
// Steps:
//  1. Resolve options and validate g, home and the node count.
//  2. A graph holding only home yields the trivial route.
//  3. Prefetch edge weights and run the selected engine.
//
// Errors: ErrNilGraph, ErrMissingHome, ErrTooManyNodes, ErrBadAlgorithm,
// ErrMissingEdge, or the context error when cancelled.
func Solve(g *core.Graph, home string, opts ...Option) (Route, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if g == nil {
		return Route{}, ErrNilGraph
	}
	if home == "" || !g.HasNode(home) {
		return Route{}, fmt.Errorf("%q: %w", home, ErrMissingHome)
	}
	if o.Algo != BruteForce && o.Algo != HeldKarp {
		return Route{}, fmt.Errorf("%v: %w", o.Algo, ErrBadAlgorithm)
	}

	others := g.NodeCount() - 1
	if others == 0 {
		return Route{Stops: []string{home}, Modes: []string{}, Total: 0}, nil
	}
	if others > o.MaxNodes {
		return Route{}, fmt.Errorf("%d nodes besides home, limit %d: %w", others, o.MaxNodes, ErrTooManyNodes)
	}
	if err := o.Ctx.Err(); err != nil {
		return Route{}, err
	}

	ws := prefetch(g, home)
	if o.Algo == HeldKarp {
		return heldKarp(o.Ctx, ws)
	}

	return newBruteForce(ws, o.Progress).run(o.Ctx, o.Workers)
}

// Weight recomputes the total of r against g, summing legs left to right.
//
// Errors: ErrMissingHome for an empty route, ErrMissingEdge when a leg has no edge.
func Weight(g *core.Graph, r Route) (float64, error) {
	if g == nil {
		return 0, ErrNilGraph
	}
	if len(r.Stops) == 0 {
		return 0, ErrMissingHome
	}

	var sum float64
	for i := 0; i+1 < len(r.Stops); i++ {
		e, ok := g.Edge(r.Stops[i], r.Stops[i+1])
		if !ok {
			return 0, fmt.Errorf("%q–%q: %w", r.Stops[i], r.Stops[i+1], ErrMissingEdge)
		}
		sum += e.Weight
	}

	return round1e9(sum), nil
}
