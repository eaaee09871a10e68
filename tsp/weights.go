// File: weights.go
// Role: prefetch graph edges into a dense row-major buffer for the hot loops.
//
// Index 0 is home; indices 1..N are the remaining nodes in graph insertion
// order. A missing edge keeps has[i*n+j] == false; the solvers report it as
// ErrMissingEdge when a route actually needs it.
package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tarjan/core"
)

// roundScale controls the 1e-9 stabilization of route totals.
const roundScale = 1e9

// round1e9 stabilizes x to an absolute 1e-9 so that equal routes summed in a
// different order compare equal. Totals differing by less than 5e-10 may
// therefore collapse. Magnitudes where x*roundScale is not finite are
// returned unchanged.
func round1e9(x float64) float64 {
	scaled := x * roundScale
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return x
	}

	return math.Round(scaled) / roundScale
}

// weights is the prefetched, immutable view of a graph used by the engines.
type weights struct {
	n     int       // |V|, home included
	ids   []string  // ids[0] == home
	w     []float64 // w[i*n+j]
	has   []bool    // has[i*n+j]
	modes []string  // modes[i*n+j]
}

// prefetch builds the dense view with home moved to index 0.
// Complexity: O(V²).
func prefetch(g *core.Graph, home string) *weights {
	var (
		all = g.Nodes()
		n   = len(all)
		ids = make([]string, 0, n)
		i   int
		j   int
	)
	ids = append(ids, home)
	for _, id := range all {
		if id != home {
			ids = append(ids, id)
		}
	}

	ws := &weights{
		n:     n,
		ids:   ids,
		w:     make([]float64, n*n),
		has:   make([]bool, n*n),
		modes: make([]string, n*n),
	}
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			e, ok := g.Edge(ids[i], ids[j])
			if !ok {
				continue
			}
			ws.set(i, j, e)
			ws.set(j, i, e)
		}
	}

	return ws
}

func (ws *weights) set(i, j int, e core.Edge) {
	k := i*ws.n + j
	ws.w[k] = e.Weight
	ws.has[k] = true
	ws.modes[k] = e.Mode
}

// missing formats ErrMissingEdge for the pair (i, j).
func (ws *weights) missing(i, j int) error {
	return fmt.Errorf("%q–%q: %w", ws.ids[i], ws.ids[j], ErrMissingEdge)
}

// complete returns ErrMissingEdge for the first absent pair in index order.
func (ws *weights) complete() error {
	var i, j int
	for i = 0; i < ws.n; i++ {
		for j = i + 1; j < ws.n; j++ {
			if !ws.has[i*ws.n+j] {
				return ws.missing(i, j)
			}
		}
	}

	return nil
}

// cycle sums home → perm[0]+1 → … → perm[N-1]+1 → home left to right.
// perm holds 0-based indices of non-home nodes.
func (ws *weights) cycle(perm []int) (float64, error) {
	var (
		n    = ws.n
		prev = 0
		sum  float64
		cur  int
	)
	for _, p := range perm {
		cur = p + 1
		if !ws.has[prev*n+cur] {
			return 0, ws.missing(prev, cur)
		}
		sum += ws.w[prev*n+cur]
		prev = cur
	}
	if !ws.has[prev*n] {
		return 0, ws.missing(prev, 0)
	}
	sum += ws.w[prev*n]

	return round1e9(sum), nil
}

// route materializes perm as a Route with the given total.
func (ws *weights) route(perm []int, total float64) Route {
	var (
		stops = make([]string, 0, len(perm)+2)
		modes = make([]string, 0, len(perm)+1)
		prev  = 0
	)
	stops = append(stops, ws.ids[0])
	for _, p := range perm {
		modes = append(modes, ws.modes[prev*ws.n+p+1])
		stops = append(stops, ws.ids[p+1])
		prev = p + 1
	}
	modes = append(modes, ws.modes[prev*ws.n])
	stops = append(stops, ws.ids[0])

	return Route{Stops: stops, Modes: modes, Total: total}
}
