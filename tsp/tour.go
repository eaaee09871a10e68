package tsp

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tarjan/core"
)

// ErrInvalidRoute is returned by ValidateRoute.
var ErrInvalidRoute = errors.New("tsp: invalid route")

// ValidateRoute enforces the closed-route invariants against g:
//
//	Stops[0] == Stops[last] == home, len(Stops) == |V|+1,
//	every node of g appears exactly once in Stops[0:last],
//	len(Modes) == len(Stops)-1 and Modes[i] labels the edge of leg i.
//
// The trivial single-node route [home] with no modes is valid.
//
// Complexity: O(V).
func ValidateRoute(g *core.Graph, home string, r Route) error {
	if g == nil {
		return ErrNilGraph
	}
	n := g.NodeCount()
	if n == 1 {
		if len(r.Stops) == 1 && r.Stops[0] == home && len(r.Modes) == 0 {
			return nil
		}

		return fmt.Errorf("single-node route %v: %w", r.Stops, ErrInvalidRoute)
	}
	if len(r.Stops) != n+1 || len(r.Modes) != n {
		return fmt.Errorf("%d stops, %d modes for %d nodes: %w", len(r.Stops), len(r.Modes), n, ErrInvalidRoute)
	}
	if r.Stops[0] != home || r.Stops[n] != home {
		return fmt.Errorf("route must start and end at %q: %w", home, ErrInvalidRoute)
	}

	seen := make(map[string]bool, n)
	var i int
	for i = 0; i < n; i++ {
		id := r.Stops[i]
		if !g.HasNode(id) || seen[id] {
			return fmt.Errorf("stop %d %q: %w", i, id, ErrInvalidRoute)
		}
		seen[id] = true

		e, ok := g.Edge(id, r.Stops[i+1])
		if !ok {
			return fmt.Errorf("%q–%q: %w", id, r.Stops[i+1], ErrMissingEdge)
		}
		if e.Mode != r.Modes[i] {
			return fmt.Errorf("leg %d mode %q, edge carries %q: %w", i, r.Modes[i], e.Mode, ErrInvalidRoute)
		}
	}

	return nil
}
