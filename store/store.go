// Package store persists the planner's inputs: the relatives (with the
// optional home) and the transport modes.
//
// Two backends implement Store:
//
//   - FileStore keeps the two JSON documents used by the command-line tool.
//   - PostgresStore keeps two tables in PostgreSQL.
//
// Both preserve insertion order. That order is the node order handed to
// the builder and therefore the route generation order.
//
// Add*/Delete* helpers load the dataset, apply one change and save it.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/tarjan/core"
	"github.com/katalvlaran/tarjan/geo"
)

// HomeKey is the reserved location name under which home is stored.
const HomeKey = "home"

// Sentinel errors.
var (
	// ErrNotFound is returned when deleting an unknown name.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicate is returned when adding a name that already exists.
	ErrDuplicate = errors.New("store: already exists")

	// ErrInvalid is returned for records that fail validation.
	ErrInvalid = errors.New("store: invalid record")

	// ErrMalformed is returned for documents that cannot be decoded.
	ErrMalformed = errors.New("store: malformed document")
)

// Dataset is everything a plan needs.
type Dataset struct {
	// Home is nil when no home has been stored.
	Home *core.Location

	// Locations are the relatives in insertion order, home excluded.
	Locations []core.Location

	// Modes are the transport modes in insertion order.
	Modes []core.TransportMode
}

// Store loads and saves a Dataset. Implementations must keep insertion order.
type Store interface {
	// Load returns the stored dataset; an empty store yields an empty Dataset.
	Load(ctx context.Context) (Dataset, error)

	// SaveLocations replaces home and all relatives.
	SaveLocations(ctx context.Context, home *core.Location, locations []core.Location) error

	// SaveModes replaces all transport modes.
	SaveModes(ctx context.Context, modes []core.TransportMode) error
}

// ValidateLocation checks a location record before it is stored.
func ValidateLocation(loc core.Location) error {
	if loc.ID == "" {
		return fmt.Errorf("location name is empty: %w", ErrInvalid)
	}
	if err := geo.Validate(loc.Point()); err != nil {
		return fmt.Errorf("location %q: %w: %w", loc.ID, ErrInvalid, err)
	}

	return nil
}

// ValidateMode checks a transport mode record before it is stored.
func ValidateMode(m core.TransportMode) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// AddLocation appends loc. A location named HomeKey becomes the home.
//
// Errors: ErrInvalid, ErrDuplicate.
func (d *Dataset) AddLocation(loc core.Location) error {
	if err := ValidateLocation(loc); err != nil {
		return err
	}
	if loc.ID == HomeKey {
		if d.Home != nil {
			return fmt.Errorf("location %q: %w", loc.ID, ErrDuplicate)
		}
		home := loc
		d.Home = &home

		return nil
	}
	for _, l := range d.Locations {
		if l.ID == loc.ID {
			return fmt.Errorf("location %q: %w", loc.ID, ErrDuplicate)
		}
	}
	d.Locations = append(d.Locations, loc)

	return nil
}

// DeleteLocation removes the location called name; HomeKey clears the home.
//
// Errors: ErrNotFound.
func (d *Dataset) DeleteLocation(name string) error {
	if name == HomeKey {
		if d.Home == nil {
			return fmt.Errorf("location %q: %w", name, ErrNotFound)
		}
		d.Home = nil

		return nil
	}
	for i, l := range d.Locations {
		if l.ID == name {
			d.Locations = append(d.Locations[:i:i], d.Locations[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("location %q: %w", name, ErrNotFound)
}

// AddMode appends m.
//
// Errors: ErrInvalid, ErrDuplicate.
func (d *Dataset) AddMode(m core.TransportMode) error {
	if err := ValidateMode(m); err != nil {
		return err
	}
	for _, x := range d.Modes {
		if x.Name == m.Name {
			return fmt.Errorf("mode %q: %w", m.Name, ErrDuplicate)
		}
	}
	d.Modes = append(d.Modes, m)

	return nil
}

// DeleteMode removes the mode called name.
//
// Errors: ErrNotFound.
func (d *Dataset) DeleteMode(name string) error {
	for i, m := range d.Modes {
		if m.Name == name {
			d.Modes = append(d.Modes[:i:i], d.Modes[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("mode %q: %w", name, ErrNotFound)
}

// AddLocation loads s, appends loc and saves the locations.
func AddLocation(ctx context.Context, s Store, loc core.Location) error {
	d, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err = d.AddLocation(loc); err != nil {
		return err
	}

	return s.SaveLocations(ctx, d.Home, d.Locations)
}

// DeleteLocation loads s, removes name and saves the locations.
func DeleteLocation(ctx context.Context, s Store, name string) error {
	d, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err = d.DeleteLocation(name); err != nil {
		return err
	}

	return s.SaveLocations(ctx, d.Home, d.Locations)
}

// AddMode loads s, appends m and saves the modes.
func AddMode(ctx context.Context, s Store, m core.TransportMode) error {
	d, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err = d.AddMode(m); err != nil {
		return err
	}

	return s.SaveModes(ctx, d.Modes)
}

// DeleteMode loads s, removes name and saves the modes.
func DeleteMode(ctx context.Context, s Store, name string) error {
	d, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err = d.DeleteMode(name); err != nil {
		return err
	}

	return s.SaveModes(ctx, d.Modes)
}
