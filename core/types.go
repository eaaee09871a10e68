// Package core defines the planner's data model: Location, TransportMode,
// Edge and the read-mostly Graph that binds them.
//
// This file declares the value types and sentinel errors; graph.go holds the
// Graph itself.
//
// Errors:
//
//	ErrEmptyNodeID          - node ID is the empty string.
//	ErrDuplicateNode        - a node with the same ID was already added.
//	ErrNodeNotFound         - requested node does not exist.
//	ErrSelfLoop             - an edge from a node to itself was requested.
//	ErrEdgeExists           - the unordered pair already carries an edge.
//	ErrBadWeight            - weight is negative, NaN or infinite.
//	ErrInvalidTransportMode - a TransportMode violates its parameter ranges.
package core

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/tarjan/geo"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyNodeID indicates that the provided node has an empty ID.
	ErrEmptyNodeID = errors.New("core: node ID is empty")

	// ErrDuplicateNode indicates that a node ID was added twice.
	ErrDuplicateNode = errors.New("core: duplicate node ID")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrSelfLoop indicates an edge whose endpoints coincide.
	ErrSelfLoop = errors.New("core: self-loop not allowed")

	// ErrEdgeExists indicates a second edge for an unordered pair.
	ErrEdgeExists = errors.New("core: edge already exists")

	// ErrBadWeight indicates a negative, NaN or infinite edge weight.
	ErrBadWeight = errors.New("core: edge weight must be finite and non-negative")

	// ErrInvalidTransportMode indicates a transport mode outside its parameter ranges.
	ErrInvalidTransportMode = errors.New("core: invalid transport mode")
)

// Location is a named geographic node.
//
// ID uniquely identifies the Location within a Graph. Street and District
// are display labels carried through persistence and rendering; they play
// no part in graph construction.
type Location struct {
	// ID is the unique node name.
	ID string

	// Street is the street/display label.
	Street string

	// District is the district label.
	District string

	// Lat is the latitude in decimal degrees.
	Lat float64

	// Lng is the longitude in decimal degrees.
	Lng float64
}

// Point returns the coordinates of l.
func (l Location) Point() geo.Point { return geo.Point{Lat: l.Lat, Lng: l.Lng} }

// SameCoordinates reports whether l and o sit on the same point, treating
// the antimeridian and the poles as single places (see geo.Same).
func (l Location) SameCoordinates(o Location) bool {
	return geo.Same(l.Point(), o.Point())
}

// TransportMode is a named travel method. It is a pure parameter set with no
// relationship to specific locations.
type TransportMode struct {
	// Name uniquely identifies the mode (e.g. "bus", "walking").
	Name string

	// SpeedKmh is the travel speed in km/h; must be > 0.
	SpeedKmh float64

	// CostPerKm is the price per kilometer; must be ≥ 0.
	CostPerKm float64

	// TransferTimeMin is the fixed boarding/transfer overhead in minutes; must be ≥ 0.
	TransferTimeMin float64
}

// Validate checks the parameter ranges of m.
//
// Errors: ErrInvalidTransportMode wrapped with the offending field.
func (m TransportMode) Validate() error {
	switch {
	case m.Name == "":
		return fmt.Errorf("name is empty: %w", ErrInvalidTransportMode)
	case !finite(m.SpeedKmh) || m.SpeedKmh <= 0:
		return fmt.Errorf("%s: speed_kmh=%v must be > 0: %w", m.Name, m.SpeedKmh, ErrInvalidTransportMode)
	case !finite(m.CostPerKm) || m.CostPerKm < 0:
		return fmt.Errorf("%s: cost_per_km=%v must be >= 0: %w", m.Name, m.CostPerKm, ErrInvalidTransportMode)
	case !finite(m.TransferTimeMin) || m.TransferTimeMin < 0:
		return fmt.Errorf("%s: transfer_time_min=%v must be >= 0: %w", m.Name, m.TransferTimeMin, ErrInvalidTransportMode)
	}

	return nil
}

// Edge is an undirected, weighted connection between two distinct nodes.
//
// U and V are stored in canonical order (U < V); Mode names the transport
// mode that produced Weight.
type Edge struct {
	// U is the lexicographically smaller endpoint ID.
	U string

	// V is the lexicographically larger endpoint ID.
	V string

	// Weight is the metric value (minutes or money), ≥ 0.
	Weight float64

	// Mode is the name of the transport mode that achieved Weight.
	Mode string
}

// Other returns the endpoint of e opposite to id, or "" if id is not an endpoint.
func (e Edge) Other(id string) string {
	switch id {
	case e.U:
		return e.V
	case e.V:
		return e.U
	default:
		return ""
	}
}

// pairKey addresses an unordered node pair; a < b always.
type pairKey struct{ a, b string }

// keyOf builds the canonical key of {u, v}.
func keyOf(u, v string) pairKey {
	if v < u {
		u, v = v, u
	}

	return pairKey{a: u, b: v}
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
