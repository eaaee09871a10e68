package observability_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/katalvlaran/tarjan/internal/logging"
	"github.com/katalvlaran/tarjan/internal/observability"
)

func TestObservePlan(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := observability.NewPlannerCollector(reg)
	require.NoError(t, err)

	c.ObservePlan("time", 20*time.Millisecond, 5, 10, nil)
	c.ObservePlan("time", time.Millisecond, 9, 36, errors.New("boom"))

	require.Equal(t, 1.0, testutil.ToFloat64(c.Plans.WithLabelValues("time", observability.OutcomeOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(c.Plans.WithLabelValues("time", observability.OutcomeError)))
	require.Equal(t, 5.0, testutil.ToFloat64(c.LastNodes))
	require.Equal(t, 10.0, testutil.ToFloat64(c.LastEdges))
	require.Equal(t, uint64(2), histogramSampleCount(t, reg, "tarjan_plan_duration_seconds", map[string]string{"weight": "time"}))
}

func TestNewPlannerCollector_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := observability.NewPlannerCollector(reg)
	require.NoError(t, err)
	b, err := observability.NewPlannerCollector(reg)
	require.NoError(t, err)
	require.Same(t, a.Plans, b.Plans)
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := observability.NewPlannerCollector(reg)
	require.NoError(t, err)
	c.ObserveHTTP("/v1/plan", http.MethodPost, http.StatusOK)
	c.ObservePlan("cost", time.Millisecond, 3, 3, nil)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	for _, name := range []string{
		"tarjan_plans_total",
		"tarjan_plan_duration_seconds",
		"tarjan_last_plan_nodes",
		"tarjan_last_plan_edges",
		`tarjan_http_requests_total{code="200",method="POST",route="/v1/plan"} 1`,
	} {
		require.True(t, strings.Contains(body, name), "missing %q", name)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *observability.PlannerCollector
	c.ObservePlan("time", 0, 1, 1, nil)
	c.ObserveHTTP("/", http.MethodGet, 200)
	require.NotNil(t, c.Handler())
}

func TestInitTracing(t *testing.T) {
	ctx := context.Background()
	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{Exporter: "none"}, nil)
	require.NoError(t, err)
	require.NoError(t, shutdown(ctx))

	_, err = observability.InitTracing(ctx, observability.TracingConfig{Exporter: "zipkin"}, nil)
	require.Error(t, err)

	var buf bytes.Buffer
	shutdown, err = observability.InitTracing(ctx, observability.TracingConfig{Exporter: "stdout", Output: &buf}, logging.Noop())
	require.NoError(t, err)
	_, span := otel.Tracer("test").Start(ctx, "unit")
	span.End()
	observability.ShutdownWithTimeout(ctx, shutdown, nil)
	require.Contains(t, buf.String(), `"Name": "unit"`)
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	metrics, err := gatherer.Gather()
	require.NoError(t, err)
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, lp := range got {
		if val, ok := want[lp.GetName()]; ok && val == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
