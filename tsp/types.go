package tsp

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors returned by Solve.
var (
	// ErrNilGraph is returned when Solve receives a nil graph.
	ErrNilGraph = errors.New("tsp: graph is nil")

	// ErrMissingHome is returned when the home node is absent from the graph.
	ErrMissingHome = errors.New("tsp: home node is missing")

	// ErrMissingEdge is returned when a route needs an edge the graph lacks.
	ErrMissingEdge = errors.New("tsp: required edge is missing")

	// ErrTooManyNodes is returned when the non-home node count exceeds MaxNodes.
	ErrTooManyNodes = errors.New("tsp: too many nodes for exact search")

	// ErrBadAlgorithm is returned for an unknown Algorithm value.
	ErrBadAlgorithm = errors.New("tsp: unknown algorithm")
)

// MaxSupportedNodes is the hard ceiling for Options.MaxNodes: 20! still fits
// into a uint64 route counter.
const MaxSupportedNodes = 20

// DefaultMaxNodes bounds the non-home node count when no option overrides it.
const DefaultMaxNodes = 12

// progressEvery is the number of evaluated routes between cancellation
// checks and progress callbacks (must be a power of two).
const progressEvery = 4096

// Algorithm selects the exact engine.
type Algorithm int

const (
	// BruteForce enumerates all orderings (default).
	BruteForce Algorithm = iota

	// HeldKarp runs the bitmask dynamic program.
	HeldKarp
)

// String returns the algorithm name.
func (a Algorithm) String() string {
	switch a {
	case BruteForce:
		return "brute-force"
	case HeldKarp:
		return "held-karp"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps "brute-force" or "held-karp" to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "brute-force", "bruteforce":
		return BruteForce, nil
	case "held-karp", "heldkarp":
		return HeldKarp, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrBadAlgorithm)
	}
}

// Route is the solver result.
//
//	Stops: home, every other node exactly once, home again (len = |V|+1).
//	Modes: Modes[i] is the transport mode on leg Stops[i]→Stops[i+1].
//	Total: sum of leg weights rounded to an absolute 1e-9. It may differ
//	       from the exact float sum by up to 5e-10.
//
// A single-node graph yields Stops=[home], no Modes and Total=0.
type Route struct {
	Stops []string
	Modes []string
	Total float64
}

// Legs returns the number of legs in r.
func (r Route) Legs() int { return len(r.Modes) }

// Options configures Solve. Use DefaultOptions and the With* helpers.
type Options struct {
	// Algo is the exact engine; BruteForce by default.
	Algo Algorithm

	// Workers > 1 enables parallel BruteForce search; 0 or 1 is sequential.
	Workers int

	// MaxNodes bounds the number of non-home nodes.
	MaxNodes int

	// Ctx cancels a running search.
	Ctx context.Context

	// Progress, if non-nil, receives (evaluated, total) route counts. It is
	// called from worker goroutines and must be safe for concurrent use.
	Progress func(done, total uint64)
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns sequential brute force with DefaultMaxNodes.
func DefaultOptions() Options {
	return Options{
		Algo:     BruteForce,
		Workers:  0,
		MaxNodes: DefaultMaxNodes,
		Ctx:      context.Background(),
	}
}

// WithWorkers sets the number of BruteForce workers. Panics if k < 0.
func WithWorkers(k int) Option {
	if k < 0 {
		panic("tsp: WithWorkers requires k >= 0")
	}

	return func(o *Options) { o.Workers = k }
}

// WithContext sets the cancellation context. Panics on nil ctx.
func WithContext(ctx context.Context) Option {
	if ctx == nil {
		panic("tsp: WithContext requires a non-nil context")
	}

	return func(o *Options) { o.Ctx = ctx }
}

// WithMaxNodes overrides DefaultMaxNodes. Panics unless 1 ≤ n ≤ MaxSupportedNodes.
func WithMaxNodes(n int) Option {
	if n < 1 || n > MaxSupportedNodes {
		panic(fmt.Sprintf("tsp: WithMaxNodes(%d) outside [1,%d]", n, MaxSupportedNodes))
	}

	return func(o *Options) { o.MaxNodes = n }
}

// WithAlgorithm selects the exact engine.
func WithAlgorithm(a Algorithm) Option {
	return func(o *Options) { o.Algo = a }
}

// WithProgress installs a progress callback. Panics on nil fn.
func WithProgress(fn func(done, total uint64)) Option {
	if fn == nil {
		panic("tsp: WithProgress requires a non-nil func")
	}

	return func(o *Options) { o.Progress = fn }
}
