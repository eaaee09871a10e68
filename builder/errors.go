// SPDX-License-Identifier: MIT
// Package: tarjan/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach context with %w via builderErrorf/wrapf.
//
// Priority (first failing check wins):
//   1. ErrInvalidWeightKind      - before any edge is computed.
//   2. ErrEmptyTransportModes
//   3. ErrInvalidTransportMode / ErrDuplicateTransportMode
//   4. ErrEmptyLocationID / ErrDuplicateLocation / ErrCoordinateOutOfRange
//   5. ErrEmptyNodeSet

package builder

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tarjan/core"
	"github.com/katalvlaran/tarjan/metric"
)

// ErrInvalidWeightKind is metric.ErrInvalidWeightKind re-exported so callers of
// Build can branch without importing metric.
var ErrInvalidWeightKind = metric.ErrInvalidWeightKind

// ErrEmptyTransportModes indicates that no transport mode was supplied.
var ErrEmptyTransportModes = errors.New("builder: transport mode list is empty")

// ErrInvalidTransportMode is core.ErrInvalidTransportMode re-exported.
var ErrInvalidTransportMode = core.ErrInvalidTransportMode

// ErrDuplicateTransportMode indicates two modes share a name; edge labels
// would be ambiguous.
var ErrDuplicateTransportMode = errors.New("builder: duplicate transport mode name")

// ErrEmptyLocationID indicates a location (or home) without an identifier.
var ErrEmptyLocationID = errors.New("builder: location ID is empty")

// ErrDuplicateLocation indicates two locations (home included) share an ID.
var ErrDuplicateLocation = errors.New("builder: duplicate location ID")

// ErrCoordinateOutOfRange indicates a non-finite or out-of-range lat/lng.
var ErrCoordinateOutOfRange = errors.New("builder: coordinate out of range")

// ErrEmptyNodeSet indicates fewer than two coordinate-distinct nodes.
var ErrEmptyNodeSet = errors.New("builder: fewer than two distinct nodes")

// method tag used as the error context prefix.
const methodBuild = "Build"

// builderErrorf returns "<method>: <formatted message>"; %w verbs in format
// are preserved for errors.Is.
func builderErrorf(method, format string, args ...interface{}) error {
	return fmt.Errorf("%s: "+format, append([]interface{}{method}, args...)...)
}
