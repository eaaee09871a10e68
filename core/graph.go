// File: graph.go
// Role: Graph storage, node/edge lifecycle and read-only queries.
//
// Determinism:
//   - Nodes() returns IDs in insertion order. Insertion order is part of the
//     contract: the solver derives its permutation generation order from it.
//   - Edges() returns edges ordered by (index(U'), index(V')) where U'/V' are
//     the endpoints ordered by insertion index, i.e. the pair-emission order
//     of a complete-graph build.
//
// Concurrency:
//   - A single sync.RWMutex guards nodes and edges. Readers (parallel solver
//     workers) only take the read lock.
package core

import (
	"fmt"
	"sort"
	"sync"
)

// Graph is an undirected, simple, weighted graph over Locations.
//
// Each unordered pair {u,v} carries at most one Edge. The graph built by the
// builder package is complete over coordinate-distinct nodes and is never
// mutated after it is returned.
type Graph struct {
	mu sync.RWMutex

	order []string            // node IDs in insertion order
	index map[string]int      // node ID → position in order
	nodes map[string]Location // node ID → Location
	edges map[pairKey]*Edge   // canonical pair → Edge
}

// NewGraph creates an empty Graph.
// Complexity: O(1).
func NewGraph() *Graph {
	return &Graph{
		index: make(map[string]int),
		nodes: make(map[string]Location),
		edges: make(map[pairKey]*Edge),
	}
}

// AddNode appends loc as a new node.
//
// Errors:
//   - ErrEmptyNodeID if loc.ID == "".
//   - ErrDuplicateNode if loc.ID is already present.
//
// Complexity: O(1) amortized.
func (g *Graph) AddNode(loc Location) error {
	if loc.ID == "" {
		return ErrEmptyNodeID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[loc.ID]; ok {
		return fmt.Errorf("%q: %w", loc.ID, ErrDuplicateNode)
	}
	g.index[loc.ID] = len(g.order)
	g.order = append(g.order, loc.ID)
	g.nodes[loc.ID] = loc

	return nil
}

// SetEdge records the single edge of the unordered pair {u,v}.
//
// Steps:
//  1. Validate IDs, loop and weight.
//  2. Under the write lock, ensure both endpoints exist and the pair is free.
//  3. Store the edge with canonical endpoint order.
//
// Errors: ErrEmptyNodeID, ErrSelfLoop, ErrBadWeight, ErrNodeNotFound, ErrEdgeExists.
//
// Complexity: O(1).
func (g *Graph) SetEdge(u, v string, weight float64, mode string) error {
	if u == "" || v == "" {
		return ErrEmptyNodeID
	}
	if u == v {
		return fmt.Errorf("%q: %w", u, ErrSelfLoop)
	}
	if !finite(weight) || weight < 0 {
		return fmt.Errorf("%q–%q weight=%v: %w", u, v, weight, ErrBadWeight)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[u]; !ok {
		return fmt.Errorf("%q: %w", u, ErrNodeNotFound)
	}
	if _, ok := g.nodes[v]; !ok {
		return fmt.Errorf("%q: %w", v, ErrNodeNotFound)
	}
	k := keyOf(u, v)
	if _, ok := g.edges[k]; ok {
		return fmt.Errorf("%q–%q: %w", u, v, ErrEdgeExists)
	}
	g.edges[k] = &Edge{U: k.a, V: k.b, Weight: weight, Mode: mode}

	return nil
}

// HasNode reports whether id is a node of g.
func (g *Graph) HasNode(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[id]

	return ok
}

// Node returns the Location stored under id.
func (g *Graph) Node(id string) (Location, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	loc, ok := g.nodes[id]

	return loc, ok
}

// Nodes returns a copy of the node IDs in insertion order.
func (g *Graph) Nodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]string(nil), g.order...)
}

// Locations returns the node Locations in insertion order.
func (g *Graph) Locations() []Location {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Location, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}

	return out
}

// NodeCount returns |V|.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.order)
}

// Edge returns a copy of the edge between u and v in either orientation.
// Complexity: O(1).
func (g *Graph) Edge(u, v string) (Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e, ok := g.edges[keyOf(u, v)]
	if !ok {
		return Edge{}, false
	}

	return *e, true
}

// HasEdge reports whether {u,v} carries an edge.
func (g *Graph) HasEdge(u, v string) bool {
	_, ok := g.Edge(u, v)

	return ok
}

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// Edges returns copies of all edges in pair-emission order (see file header).
// Complexity: O(E log E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		ai, bi := g.rank(out[i])
		aj, bj := g.rank(out[j])
		if ai != aj {
			return ai < aj
		}

		return bi < bj
	})

	return out
}

// TotalWeight returns the sum of all edge weights, summed in Edges() order.
func (g *Graph) TotalWeight() float64 {
	var sum float64
	for _, e := range g.Edges() {
		sum += e.Weight
	}

	return sum
}

// rank returns the insertion indices of e's endpoints, smaller first.
// Caller holds g.mu.
func (g *Graph) rank(e Edge) (int, int) {
	a, b := g.index[e.U], g.index[e.V]
	if b < a {
		a, b = b, a
	}

	return a, b
}
