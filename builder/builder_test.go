package builder_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tarjan/builder"
	"github.com/katalvlaran/tarjan/core"
	"github.com/katalvlaran/tarjan/geo"
	"github.com/katalvlaran/tarjan/metric"
)

var (
	bus     = core.TransportMode{Name: "bus", SpeedKmh: 30, CostPerKm: 0.12, TransferTimeMin: 5}
	walking = core.TransportMode{Name: "walking", SpeedKmh: 5, CostPerKm: 0, TransferTimeMin: 0}
	train   = core.TransportMode{Name: "train", SpeedKmh: 90, CostPerKm: 0.3, TransferTimeMin: 15}
	bicycle = core.TransportMode{Name: "bicycle", SpeedKmh: 15, CostPerKm: 0.02, TransferTimeMin: 1}
)

// kyiv returns a small fixture of real Kyiv addresses.
func kyiv() (home core.Location, rel []core.Location) {
	home = core.Location{ID: "home", Street: "Khreshchatyk 22", District: "Shevchenkivskyi", Lat: 50.4474, Lng: 30.5227}
	rel = []core.Location{
		{ID: "aunt", Street: "Obolonskyi 16", District: "Obolonskyi", Lat: 50.5050, Lng: 30.4980},
		{ID: "uncle", Street: "Kharkivske 19", District: "Darnytskyi", Lat: 50.4120, Lng: 30.6440},
		{ID: "granny", Street: "Peremohy 67", District: "Sviatoshynskyi", Lat: 50.4560, Lng: 30.3650},
		{ID: "cousin", Street: "Holosiivskyi 100", District: "Holosiivskyi", Lat: 50.3900, Lng: 30.5100},
	}

	return home, rel
}

// fixedDistance returns a distance func that always reports km.
func fixedDistance(km float64) builder.BuilderOption {
	return builder.WithDistanceFunc(func(a, b geo.Point) float64 { return km })
}

func TestBuild_ScenarioA_SingleModeSingleRelative(t *testing.T) {
	home := core.Location{ID: "H", Lat: 0, Lng: 0}
	rel := []core.Location{{ID: "R", Lat: 0, Lng: 0.1}}
	g, err := builder.Build(rel, &home, []core.TransportMode{bus}, metric.Time, fixedDistance(10))
	require.NoError(t, err)

	e, ok := g.Edge("H", "R")
	require.True(t, ok)
	require.InDelta(t, 25.0, e.Weight, 1e-12) // (10/30)*60 + 5
	require.Equal(t, "bus", e.Mode)
}

func TestBuild_ScenarioB_PerEdgeArgMin(t *testing.T) {
	// Short hop: walking (no transfer) beats bus; long hop: bus beats walking.
	home := core.Location{ID: "H", Lat: 50.0, Lng: 30.0}
	near := core.Location{ID: "near", Lat: 50.002, Lng: 30.0}
	far := core.Location{ID: "far", Lat: 50.2, Lng: 30.0}
	g, err := builder.Build([]core.Location{near, far}, &home, []core.TransportMode{bus, walking}, metric.Time)
	require.NoError(t, err)

	e, _ := g.Edge("H", "near")
	require.Equal(t, "walking", e.Mode)
	e, _ = g.Edge("H", "far")
	require.Equal(t, "bus", e.Mode)
	e, _ = g.Edge("near", "far")
	require.Equal(t, "bus", e.Mode)
}

func TestBuild_EdgeIsMinOverModes(t *testing.T) {
	home, rel := kyiv()
	modes := []core.TransportMode{bus, walking, train, bicycle}
	for _, kind := range []metric.Kind{metric.Time, metric.Cost} {
		g, err := builder.Build(rel, &home, modes, kind)
		require.NoError(t, err)

		nodes := g.Locations()
		require.Len(t, nodes, 5)
		require.Equal(t, 10, g.EdgeCount())
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				e, ok := g.Edge(nodes[i].ID, nodes[j].ID)
				require.True(t, ok)

				d := geo.Distance(nodes[i].Point(), nodes[j].Point())
				want, wantMode := math.Inf(1), ""
				for _, m := range modes {
					v, err := metric.Metric(d, m, kind)
					require.NoError(t, err)
					if v < want {
						want, wantMode = v, m.Name
					}
				}
				require.Equal(t, want, e.Weight, "%s–%s %v", nodes[i].ID, nodes[j].ID, kind)
				require.Equal(t, wantMode, e.Mode)
				require.GreaterOrEqual(t, e.Weight, 0.0)
			}
		}
	}
}

func TestBuild_TieGoesToFirstMode(t *testing.T) {
	home := core.Location{ID: "H", Lat: 1, Lng: 1}
	rel := []core.Location{{ID: "R", Lat: 1, Lng: 1.5}}
	twinA := core.TransportMode{Name: "tram", SpeedKmh: 20, CostPerKm: 0.1, TransferTimeMin: 3}
	twinB := core.TransportMode{Name: "trolleybus", SpeedKmh: 20, CostPerKm: 0.1, TransferTimeMin: 3}

	g, err := builder.Build(rel, &home, []core.TransportMode{twinA, twinB}, metric.Cost)
	require.NoError(t, err)
	e, _ := g.Edge("H", "R")
	require.Equal(t, "tram", e.Mode)

	g, err = builder.Build(rel, &home, []core.TransportMode{twinB, twinA}, metric.Cost)
	require.NoError(t, err)
	e, _ = g.Edge("H", "R")
	require.Equal(t, "trolleybus", e.Mode)
}

func TestBuild_CoordinateDuplicatesGetNoEdge(t *testing.T) {
	home := core.Location{ID: "H", Lat: 10, Lng: 10}
	rel := []core.Location{
		{ID: "A", Lat: 10.1, Lng: 10},
		{ID: "B", Lat: 10.1, Lng: 10}, // same as A
		{ID: "C", Lat: 10.2, Lng: 10.2},
	}
	var skipped [][2]string
	g, err := builder.Build(rel, &home, []core.TransportMode{bus}, metric.Time,
		builder.WithOnSkip(func(u, v string) { skipped = append(skipped, [2]string{u, v}) }))
	require.NoError(t, err)

	require.False(t, g.HasEdge("A", "B"))
	require.Equal(t, [][2]string{{"A", "B"}}, skipped)
	require.Equal(t, 5, g.EdgeCount()) // C(4,2) - 1
	for _, p := range [][2]string{{"H", "A"}, {"H", "B"}, {"H", "C"}, {"A", "C"}, {"B", "C"}} {
		require.True(t, g.HasEdge(p[0], p[1]), "%v", p)
	}
}

func TestBuild_AntimeridianTwinsGetNoEdge(t *testing.T) {
	home := core.Location{ID: "H", Lat: 10, Lng: 170}
	rel := []core.Location{
		{ID: "east", Lat: 0, Lng: 180},
		{ID: "west", Lat: 0, Lng: -180},
	}
	var skipped [][2]string
	g, err := builder.Build(rel, &home, []core.TransportMode{bus}, metric.Cost,
		builder.WithOnSkip(func(u, v string) { skipped = append(skipped, [2]string{u, v}) }))
	require.NoError(t, err)
	require.False(t, g.HasEdge("east", "west"))
	require.Equal(t, [][2]string{{"east", "west"}}, skipped)
	require.Equal(t, 2, g.EdgeCount())
}

func TestBuild_ScenarioE_InvalidKindBeforeAnyEdge(t *testing.T) {
	home, rel := kyiv()
	var edges int
	hook := builder.WithOnEdge(func(core.Edge, float64) { edges++ })

	_, err := metric.ParseKind("distance")
	require.ErrorIs(t, err, metric.ErrInvalidWeightKind)

	g, err := builder.Build(rel, &home, []core.TransportMode{bus}, metric.Kind(99), hook)
	require.ErrorIs(t, err, builder.ErrInvalidWeightKind)
	require.Nil(t, g)
	require.Zero(t, edges)

	// Kind is checked before the mode list.
	_, err = builder.Build(rel, &home, nil, metric.Kind(0))
	require.ErrorIs(t, err, metric.ErrInvalidWeightKind)
}

func TestBuild_ValidationErrors(t *testing.T) {
	home, rel := kyiv()
	modes := []core.TransportMode{bus}

	cases := []struct {
		name   string
		locs   []core.Location
		home   *core.Location
		modes  []core.TransportMode
		target error
	}{
		{"EmptyModes", rel, &home, nil, builder.ErrEmptyTransportModes},
		{"InvalidMode", rel, &home, []core.TransportMode{{Name: "teleport", SpeedKmh: 0}}, builder.ErrInvalidTransportMode},
		{"DuplicateMode", rel, &home, []core.TransportMode{bus, bus}, builder.ErrDuplicateTransportMode},
		{"EmptyID", []core.Location{{Lat: 1}}, &home, modes, builder.ErrEmptyLocationID},
		{"DuplicateID", []core.Location{{ID: "home", Lat: 1}}, &home, modes, builder.ErrDuplicateLocation},
		{"LatRange", []core.Location{{ID: "x", Lat: 91}}, &home, modes, builder.ErrCoordinateOutOfRange},
		{"LngNaN", []core.Location{{ID: "x", Lng: math.NaN()}}, &home, modes, builder.ErrCoordinateOutOfRange},
		{"NoNodes", nil, nil, modes, builder.ErrEmptyNodeSet},
		{"HomeOnly", nil, &home, modes, builder.ErrEmptyNodeSet},
		{"SingleRelativeNoHome", rel[:1], nil, modes, builder.ErrEmptyNodeSet},
		{"AllSameCoordinates", []core.Location{{ID: "twin", Lat: home.Lat, Lng: home.Lng}}, &home, modes, builder.ErrEmptyNodeSet},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := builder.Build(tc.locs, tc.home, tc.modes, metric.Time)
			require.ErrorIs(t, err, tc.target)
			require.Nil(t, g)
		})
	}
}

func TestBuild_LatRangeKeepsGeoSentinel(t *testing.T) {
	home := core.Location{ID: "H"}
	_, err := builder.Build([]core.Location{{ID: "x", Lat: -95}}, &home, []core.TransportMode{bus}, metric.Time)
	require.ErrorIs(t, err, geo.ErrLatitudeRange)
}

func TestBuild_NoHomeIsAllowed(t *testing.T) {
	_, rel := kyiv()
	g, err := builder.Build(rel, nil, []core.TransportMode{walking}, metric.Time)
	require.NoError(t, err)
	require.Equal(t, []string{"aunt", "uncle", "granny", "cousin"}, g.Nodes())
	require.Equal(t, 6, g.EdgeCount())
}

func TestBuild_DoesNotMutateInputs(t *testing.T) {
	home, rel := kyiv()
	modes := []core.TransportMode{train, bus}
	relCopy := append([]core.Location(nil), rel...)
	modesCopy := append([]core.TransportMode(nil), modes...)
	homeCopy := home

	_, err := builder.Build(rel, &home, modes, metric.Time)
	require.NoError(t, err)
	require.Equal(t, relCopy, rel)
	require.Equal(t, modesCopy, modes)
	require.Equal(t, homeCopy, home)
}

func TestBuild_Deterministic(t *testing.T) {
	home, rel := kyiv()
	modes := []core.TransportMode{bus, walking, train, bicycle}
	first, err := builder.Build(rel, &home, modes, metric.Time)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		g, err := builder.Build(rel, &home, modes, metric.Time)
		require.NoError(t, err)
		require.Equal(t, first.Nodes(), g.Nodes())
		require.Equal(t, first.Edges(), g.Edges())
	}
}

func TestBuild_OnEdgeSeesPairEmissionOrder(t *testing.T) {
	home, rel := kyiv()
	var order [][2]string
	_, err := builder.Build(rel[:2], &home, []core.TransportMode{bus}, metric.Time,
		builder.WithOnEdge(func(e core.Edge, d float64) {
			require.Greater(t, d, 0.0)
			order = append(order, [2]string{e.U, e.V})
		}))
	require.NoError(t, err)
	// Pairs (home,aunt), (home,uncle), (aunt,uncle) with canonical endpoint order.
	require.Equal(t, [][2]string{{"aunt", "home"}, {"home", "uncle"}, {"aunt", "uncle"}}, order)
}

func TestOptions_PanicOnNil(t *testing.T) {
	require.Panics(t, func() { builder.WithDistanceFunc(nil) })
	require.Panics(t, func() { builder.WithOnEdge(nil) })
	require.Panics(t, func() { builder.WithOnSkip(nil) })
}
