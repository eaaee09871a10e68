// Package observability bundles the Prometheus collectors and the
// OpenTelemetry tracer setup shared by the planner service and the HTTP API.
package observability

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Plan outcomes used as the "outcome" label.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// PlannerCollector bundles the planner and HTTP metrics and exposes the
// /metrics handler for the registry they live in.
type PlannerCollector struct {
	gatherer prometheus.Gatherer

	Plans        *prometheus.CounterVec
	PlanDuration *prometheus.HistogramVec
	LastNodes    prometheus.Gauge
	LastEdges    prometheus.Gauge
	HTTPRequests *prometheus.CounterVec
}

// NewPlannerCollector registers the collectors against reg, defaulting to
// the global Prometheus registry when nil. Registering twice on the same
// registry returns the existing collectors.
func NewPlannerCollector(reg prometheus.Registerer) (*PlannerCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	plans, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tarjan_plans_total",
		Help: "Route plans computed, labeled by weight kind and outcome.",
	}, []string{"weight", "outcome"}), "tarjan_plans_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tarjan_plan_duration_seconds",
		Help:    "Wall time of build+solve in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
	}, []string{"weight"}), "tarjan_plan_duration_seconds")
	if err != nil {
		return nil, err
	}

	nodes, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tarjan_last_plan_nodes",
		Help: "Node count of the most recent successful plan.",
	}), "tarjan_last_plan_nodes")
	if err != nil {
		return nil, err
	}
	edges, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tarjan_last_plan_edges",
		Help: "Edge count of the most recent successful plan.",
	}), "tarjan_last_plan_edges")
	if err != nil {
		return nil, err
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tarjan_http_requests_total",
		Help: "HTTP requests handled, labeled by route template, method and status code.",
	}, []string{"route", "method", "code"}), "tarjan_http_requests_total")
	if err != nil {
		return nil, err
	}

	return &PlannerCollector{
		gatherer:     gatherer,
		Plans:        plans,
		PlanDuration: durations,
		LastNodes:    nodes,
		LastEdges:    edges,
		HTTPRequests: requests,
	}, nil
}

// ObservePlan records one plan attempt. Node and edge gauges move only on
// success.
func (c *PlannerCollector) ObservePlan(weight string, elapsed time.Duration, nodes, edges int, err error) {
	if c == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	c.Plans.WithLabelValues(weight, outcome).Inc()
	c.PlanDuration.WithLabelValues(weight).Observe(elapsed.Seconds())
	if err == nil {
		c.LastNodes.Set(float64(nodes))
		c.LastEdges.Set(float64(edges))
	}
}

// ObserveHTTP counts one handled request.
func (c *PlannerCollector) ObserveHTTP(route, method string, code int) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *PlannerCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
