// Package tarjan plans a round trip from home through every relative, over
// several transport modes, minimizing either total travel time or total
// travel cost.
//
// 🚀 What is tarjan?
//
//	An exact route planner made of small, independently testable layers:
//		• geo:      ellipsoidal distance between two coordinates (km)
//		• metric:   time/cost of one leg for one transport mode
//		• core:     Location, TransportMode, Edge and the thread-safe Graph
//		• builder:  complete graph with the best mode per pair
//		• tsp:      exhaustive (optionally parallel) and Held–Karp search
//		• planner:  Plan = Build + Solve, plus a logged/traced Service
//		• store:    JSON-file and PostgreSQL persistence of the inputs
//		• render:   itinerary text, Graphviz DOT and GeoJSON output
//
// ✨ Guarantees
//
//   - Exact: every ordering is considered; no heuristics.
//   - Deterministic: equal inputs (including slice order) give equal routes,
//     sequential or parallel.
//   - Pure core: geo, metric, core, builder and tsp neither log nor do I/O;
//     they expose hooks instead.
//
// Layout:
//
//	cmd/tarjan/          - CLI: plan, serve, locations, modes
//	internal/config/     - environment and .env configuration
//	internal/logging/    - slog-backed structured logger
//	internal/observability/ - Prometheus collectors, OpenTelemetry setup
//	internal/httpapi/    - gorilla/mux REST API
//
// Quick example:
//
//	home := core.Location{ID: "home", Lat: 50.4474, Lng: 30.5227}
//	res, err := planner.Plan(ctx, relatives, &home, modes, metric.Time)
//	_ = render.Itinerary(os.Stdout, res)
//
//	go install github.com/katalvlaran/tarjan/cmd/tarjan@latest
package tarjan
