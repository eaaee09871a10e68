package metric_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tarjan/core"
	"github.com/katalvlaran/tarjan/metric"
)

var (
	bus     = core.TransportMode{Name: "bus", SpeedKmh: 30, CostPerKm: 0.12, TransferTimeMin: 5}
	walking = core.TransportMode{Name: "walking", SpeedKmh: 5, CostPerKm: 0, TransferTimeMin: 0}
	train   = core.TransportMode{Name: "train", SpeedKmh: 90, CostPerKm: 0.3, TransferTimeMin: 15}
)

func TestMetric_Formulas(t *testing.T) {
	got, err := metric.Metric(10, bus, metric.Time)
	require.NoError(t, err)
	require.InDelta(t, 25.0, got, 1e-12) // (10/30)*60 + 5

	got, err = metric.Metric(10, bus, metric.Cost)
	require.NoError(t, err)
	require.InDelta(t, 1.2, got, 1e-12)

	got, err = metric.Metric(0, train, metric.Time)
	require.NoError(t, err)
	require.Equal(t, 15.0, got)
}

func TestMetric_InvalidKind(t *testing.T) {
	for _, k := range []metric.Kind{0, 3, -1} {
		_, err := metric.Metric(1, bus, k)
		require.ErrorIs(t, err, metric.ErrInvalidWeightKind)
	}
}

func TestMetric_BoundsAndMonotone(t *testing.T) {
	modes := []core.TransportMode{bus, walking, train}
	distances := []float64{0, 0.001, 0.5, 1, 2.5, 10, 100, 1234.5, 20000}
	for _, m := range modes {
		for _, kind := range []metric.Kind{metric.Time, metric.Cost} {
			prev := -1.0
			for _, d := range distances {
				v, err := metric.Metric(d, m, kind)
				require.NoError(t, err)
				if kind == metric.Time {
					require.GreaterOrEqual(t, v, m.TransferTimeMin)
				} else {
					require.GreaterOrEqual(t, v, 0.0)
				}
				require.GreaterOrEqual(t, v, prev, "%s/%v not monotone at d=%v", m.Name, kind, d)
				prev = v
			}
		}
	}
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want metric.Kind
		ok   bool
	}{
		{"time", metric.Time, true},
		{" Cost ", metric.Cost, true},
		{"TIME", metric.Time, true},
		{"distance", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := metric.ParseKind(tc.in)
		if !tc.ok {
			require.ErrorIs(t, err, metric.ErrInvalidWeightKind, tc.in)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}
}

func TestKind_TextRoundTrip(t *testing.T) {
	var body struct {
		Weight metric.Kind `json:"weight"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"weight":"cost"}`), &body))
	require.Equal(t, metric.Cost, body.Weight)

	require.Error(t, json.Unmarshal([]byte(`{"weight":"distance"}`), &body))

	_, err := json.Marshal(struct{ K metric.Kind }{K: 7})
	require.Error(t, err)
	require.Equal(t, "Kind(7)", metric.Kind(7).String())
	require.Equal(t, "min", metric.Time.Unit())
}
