package metric

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/tarjan/core"
)

// ErrInvalidWeightKind indicates an unsupported optimization criterion.
var ErrInvalidWeightKind = errors.New("metric: invalid weight kind, use \"time\" or \"cost\"")

// Kind selects which metric the graph and solver optimize.
type Kind int

const (
	// Time optimizes total travel time in minutes.
	Time Kind = iota + 1

	// Cost optimizes total travel cost.
	Cost
)

const minutesPerHour = 60

// String returns "time", "cost", or "Kind(n)" for unknown values.
func (k Kind) String() string {
	switch k {
	case Time:
		return "time"
	case Cost:
		return "cost"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Unit returns the display unit of k ("min" or "cost").
func (k Kind) Unit() string {
	if k == Time {
		return "min"
	}

	return "cost"
}

// Valid reports whether k is Time or Cost.
func (k Kind) Valid() bool { return k == Time || k == Cost }

// ParseKind maps "time"/"cost" (case-insensitive, surrounding space ignored)
// to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "time":
		return Time, nil
	case "cost":
		return Cost, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidWeightKind)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%v: %w", k, ErrInvalidWeightKind)
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v

	return nil
}

// Metric returns the cost of travelling distanceKm with mode under kind.
//
// Contract:
//   - mode is assumed valid (see core.TransportMode.Validate); Metric does not
//     re-check it.
//   - Returns ErrInvalidWeightKind for any kind other than Time or Cost.
//
// Complexity: O(1).
func Metric(distanceKm float64, mode core.TransportMode, kind Kind) (float64, error) {
	switch kind {
	case Time:
		return (distanceKm/mode.SpeedKmh)*minutesPerHour + mode.TransferTimeMin, nil
	case Cost:
		return mode.CostPerKm * distanceKm, nil
	default:
		return 0, fmt.Errorf("%v: %w", kind, ErrInvalidWeightKind)
	}
}
