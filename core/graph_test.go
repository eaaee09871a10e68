// Package core_test verifies Graph lifecycle rules, canonical edge storage and
// deterministic enumeration.
package core_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tarjan/core"
)

// newTriangle returns home/a/b with all three edges set.
func newTriangle(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	require.NoError(t, g.AddNode(core.Location{ID: "home", Lat: 1, Lng: 1}))
	require.NoError(t, g.AddNode(core.Location{ID: "b", Lat: 2, Lng: 2}))
	require.NoError(t, g.AddNode(core.Location{ID: "a", Lat: 3, Lng: 3}))
	require.NoError(t, g.SetEdge("home", "b", 1, "bus"))
	require.NoError(t, g.SetEdge("home", "a", 2, "train"))
	require.NoError(t, g.SetEdge("b", "a", 3, "walking"))

	return g
}

func TestGraph_AddNode(t *testing.T) {
	g := core.NewGraph()
	require.ErrorIs(t, g.AddNode(core.Location{}), core.ErrEmptyNodeID)
	require.NoError(t, g.AddNode(core.Location{ID: "x"}))
	require.ErrorIs(t, g.AddNode(core.Location{ID: "x", Lat: 5}), core.ErrDuplicateNode)
	require.Equal(t, 1, g.NodeCount())

	loc, ok := g.Node("x")
	require.True(t, ok)
	require.Equal(t, 0.0, loc.Lat) // first insert wins
}

func TestGraph_SetEdgeValidation(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode(core.Location{ID: "u"}))
	require.NoError(t, g.AddNode(core.Location{ID: "v"}))

	cases := []struct {
		name   string
		u, v   string
		w      float64
		target error
	}{
		{"EmptyID", "", "v", 1, core.ErrEmptyNodeID},
		{"SelfLoop", "u", "u", 1, core.ErrSelfLoop},
		{"Negative", "u", "v", -1, core.ErrBadWeight},
		{"NaN", "u", "v", math.NaN(), core.ErrBadWeight},
		{"Inf", "u", "v", math.Inf(1), core.ErrBadWeight},
		{"MissingNode", "u", "w", 1, core.ErrNodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, g.SetEdge(tc.u, tc.v, tc.w, "bus"), tc.target)
		})
	}

	require.NoError(t, g.SetEdge("v", "u", 0, "bus"))
	require.ErrorIs(t, g.SetEdge("u", "v", 2, "train"), core.ErrEdgeExists)
}

func TestGraph_EdgeIsUnordered(t *testing.T) {
	g := newTriangle(t)

	e1, ok := g.Edge("a", "b")
	require.True(t, ok)
	e2, ok := g.Edge("b", "a")
	require.True(t, ok)
	require.Equal(t, e1, e2)
	require.Equal(t, "a", e1.U) // canonical order
	require.Equal(t, "b", e1.V)
	require.Equal(t, "walking", e1.Mode)
	require.Equal(t, "a", e1.Other("b"))
	require.Equal(t, "", e1.Other("home"))

	require.False(t, g.HasEdge("a", "zzz"))
}

func TestGraph_DeterministicOrder(t *testing.T) {
	g := newTriangle(t)
	require.Equal(t, []string{"home", "b", "a"}, g.Nodes())

	edges := g.Edges()
	require.Len(t, edges, 3)
	// Pair-emission order by insertion index: (home,b), (home,a), (b,a).
	require.Equal(t, 1.0, edges[0].Weight)
	require.Equal(t, 2.0, edges[1].Weight)
	require.Equal(t, 3.0, edges[2].Weight)
	require.Equal(t, 6.0, g.TotalWeight())

	locs := g.Locations()
	require.Equal(t, "a", locs[2].ID)
}

func TestGraph_NodesReturnsCopy(t *testing.T) {
	g := newTriangle(t)
	ids := g.Nodes()
	ids[0] = "mutated"
	require.Equal(t, "home", g.Nodes()[0])
}

func TestGraph_ConcurrentReads(t *testing.T) {
	g := newTriangle(t)
	var wg sync.WaitGroup
	var i int
	for i = 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var j int
			for j = 0; j < 1000; j++ {
				_, _ = g.Edge("home", "a")
				_ = g.Nodes()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 3, g.EdgeCount())
}

func TestTransportMode_Validate(t *testing.T) {
	ok := core.TransportMode{Name: "bus", SpeedKmh: 30, CostPerKm: 0.1, TransferTimeMin: 5}
	require.NoError(t, ok.Validate())

	bad := []core.TransportMode{
		{SpeedKmh: 30},
		{Name: "x", SpeedKmh: 0},
		{Name: "x", SpeedKmh: math.NaN()},
		{Name: "x", SpeedKmh: 1, CostPerKm: -0.5},
		{Name: "x", SpeedKmh: 1, TransferTimeMin: -1},
		{Name: "x", SpeedKmh: 1, TransferTimeMin: math.Inf(1)},
	}
	for _, m := range bad {
		require.ErrorIs(t, m.Validate(), core.ErrInvalidTransportMode, "%+v", m)
	}
}

func TestLocation_SameCoordinates(t *testing.T) {
	a := core.Location{ID: "a", Lat: 1.5, Lng: 2.5}
	b := core.Location{ID: "b", Lat: 1.5, Lng: 2.5}
	c := core.Location{ID: "c", Lat: 1.5, Lng: 2.6}
	require.True(t, a.SameCoordinates(b))
	require.False(t, a.SameCoordinates(c))
	require.True(t, core.Location{Lng: 180}.SameCoordinates(core.Location{Lng: -180}))
	require.Equal(t, 2.5, a.Point().Lng)
}
