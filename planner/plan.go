// Package planner is the entry point that turns locations, a home and a set
// of transport modes into the optimal round trip.
//
// Plan composes builder.Build and tsp.Solve and returns their errors
// unchanged, so callers match them with errors.Is against the builder,
// metric and tsp sentinels. Service wraps Plan with logging, Prometheus
// metrics and an OpenTelemetry span.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/tarjan/builder"
	"github.com/katalvlaran/tarjan/core"
	"github.com/katalvlaran/tarjan/metric"
	"github.com/katalvlaran/tarjan/tsp"
)

// Result is a solved plan.
type Result struct {
	// Graph is the complete weighted graph the route was solved on.
	Graph *core.Graph

	// Route is the optimal closed route from home.
	Route tsp.Route

	// Kind is the metric the weights are expressed in.
	Kind metric.Kind

	// Elapsed is the wall time of build plus solve.
	Elapsed time.Duration
}

// NetworkTotal returns the sum of all edge weights of the planned graph.
func (r Result) NetworkTotal() float64 {
	if r.Graph == nil {
		return 0
	}

	return r.Graph.TotalWeight()
}

// Options tunes Plan.
type Options struct {
	Workers   int
	MaxNodes  int
	Algorithm tsp.Algorithm
	Progress  func(done, total uint64)
	Build     []builder.BuilderOption
}

// Option mutates Options.
type Option func(*Options)

// WithWorkers enables parallel search on k workers. Panics if k < 0.
func WithWorkers(k int) Option {
	if k < 0 {
		panic("planner: WithWorkers requires k >= 0")
	}

	return func(o *Options) { o.Workers = k }
}

// WithMaxNodes bounds the number of non-home nodes; 0 keeps the solver default.
func WithMaxNodes(n int) Option {
	if n < 0 || n > tsp.MaxSupportedNodes {
		panic(fmt.Sprintf("planner: WithMaxNodes(%d) outside [0,%d]", n, tsp.MaxSupportedNodes))
	}

	return func(o *Options) { o.MaxNodes = n }
}

// WithAlgorithm selects the exact engine.
func WithAlgorithm(a tsp.Algorithm) Option {
	return func(o *Options) { o.Algorithm = a }
}

// WithProgress forwards solver progress to fn.
func WithProgress(fn func(done, total uint64)) Option {
	if fn == nil {
		panic("planner: WithProgress requires a non-nil func")
	}

	return func(o *Options) { o.Progress = fn }
}

// WithBuildOptions forwards options to builder.Build.
func WithBuildOptions(opts ...builder.BuilderOption) Option {
	return func(o *Options) { o.Build = append(o.Build, opts...) }
}

// Plan builds the weighted graph and solves the round trip from home.
//
// Steps:
//  1. Reject an unsupported kind before any work (metric.ErrInvalidWeightKind).
//  2. Reject a nil home (tsp.ErrMissingHome).
//  3. builder.Build, then tsp.Solve with ctx for cancellation.
//
// Inputs are never mutated.
func Plan(ctx context.Context, locations []core.Location, home *core.Location, modes []core.TransportMode, kind metric.Kind, opts ...Option) (Result, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if !kind.Valid() {
		return Result{}, fmt.Errorf("planner: %v: %w", kind, metric.ErrInvalidWeightKind)
	}
	if home == nil {
		return Result{}, fmt.Errorf("planner: no home location: %w", tsp.ErrMissingHome)
	}

	start := time.Now()
	g, err := builder.Build(locations, home, modes, kind, o.Build...)
	if err != nil {
		return Result{}, err
	}

	solveOpts := []tsp.Option{
		tsp.WithContext(ctx),
		tsp.WithWorkers(o.Workers),
		tsp.WithAlgorithm(o.Algorithm),
	}
	if o.MaxNodes > 0 {
		solveOpts = append(solveOpts, tsp.WithMaxNodes(o.MaxNodes))
	}
	if o.Progress != nil {
		solveOpts = append(solveOpts, tsp.WithProgress(o.Progress))
	}
	route, err := tsp.Solve(g, home.ID, solveOpts...)
	if err != nil {
		return Result{}, err
	}
	if err = tsp.ValidateRoute(g, home.ID, route); err != nil {
		return Result{}, err
	}

	return Result{Graph: g, Route: route, Kind: kind, Elapsed: time.Since(start)}, nil
}
