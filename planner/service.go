package planner

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tarjan/builder"
	"github.com/katalvlaran/tarjan/core"
	"github.com/katalvlaran/tarjan/internal/logging"
	"github.com/katalvlaran/tarjan/internal/observability"
	"github.com/katalvlaran/tarjan/metric"
)

const tracerName = "github.com/katalvlaran/tarjan/planner"

// Service runs plans with logging, metrics and tracing attached.
// A Service is safe for concurrent use.
type Service struct {
	log      logging.Logger
	metrics  *observability.PlannerCollector
	tracer   trace.Tracer
	defaults []Option
}

// NewService returns a Service. A nil log drops logs and a nil collector
// disables metrics. defaults are applied before per-call options.
func NewService(log logging.Logger, metrics *observability.PlannerCollector, defaults ...Option) *Service {
	if log == nil {
		log = logging.Noop()
	}

	return &Service{
		log:      log.With(logging.String("component", "planner")),
		metrics:  metrics,
		tracer:   otel.Tracer(tracerName),
		defaults: defaults,
	}
}

// Plan runs the package-level Plan inside a "planner.Plan" span. Each
// computed edge is logged at debug level; the network statistics and the
// solved route at info level.
func (s *Service) Plan(ctx context.Context, locations []core.Location, home *core.Location, modes []core.TransportMode, kind metric.Kind, opts ...Option) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "planner.Plan", trace.WithAttributes(
		attribute.String("weight", kind.String()),
		attribute.Int("locations", len(locations)),
		attribute.Int("modes", len(modes)),
	))
	defer span.End()

	onEdge := builder.WithOnEdge(func(e core.Edge, km float64) {
		s.log.Debug(ctx, "edge added",
			logging.String("u", e.U),
			logging.String("v", e.V),
			logging.Float("distance_km", km),
			logging.Float("weight", e.Weight),
			logging.String("mode", e.Mode),
		)
	})
	onSkip := builder.WithOnSkip(func(u, v string) {
		s.log.Debug(ctx, "pair skipped: identical coordinates", logging.String("u", u), logging.String("v", v))
	})

	all := make([]Option, 0, len(s.defaults)+len(opts)+1)
	all = append(all, s.defaults...)
	all = append(all, WithBuildOptions(onEdge, onSkip))
	all = append(all, opts...)

	start := time.Now()
	res, err := Plan(ctx, locations, home, modes, kind, all...)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.ObservePlan(kind.String(), elapsed, 0, 0, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Warn(ctx, "plan failed", logging.String("weight", kind.String()), logging.Err(err))

		return Result{}, err
	}

	nodes, edges := res.Graph.NodeCount(), res.Graph.EdgeCount()
	s.metrics.ObservePlan(kind.String(), elapsed, nodes, edges, nil)
	span.SetAttributes(
		attribute.Int("nodes", nodes),
		attribute.Int("edges", edges),
		attribute.Float64("network_total", res.NetworkTotal()),
		attribute.Float64("route_total", res.Route.Total),
	)
	s.log.Info(ctx, "network built",
		logging.Int("nodes", nodes),
		logging.Int("edges", edges),
		logging.Float("network_total", res.NetworkTotal()),
		logging.String("weight", kind.String()),
	)
	s.log.Info(ctx, "route solved",
		logging.Any("stops", res.Route.Stops),
		logging.Any("modes", res.Route.Modes),
		logging.Float("total", res.Route.Total),
		logging.Duration("elapsed", res.Elapsed),
	)

	return res, nil
}
