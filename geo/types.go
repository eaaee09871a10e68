package geo

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by Validate.
var (
	// ErrNotFinite indicates a NaN or infinite coordinate.
	ErrNotFinite = errors.New("geo: coordinate is not finite")

	// ErrLatitudeRange indicates |lat| > 90.
	ErrLatitudeRange = errors.New("geo: latitude out of range [-90,90]")

	// ErrLongitudeRange indicates |lng| > 180.
	ErrLongitudeRange = errors.New("geo: longitude out of range [-180,180]")
)

// Point is a geographic position in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// String renders the point as "(lat, lng)" with six decimals (~0.1 m).
func (p Point) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.Lat, p.Lng)
}

// Validate reports whether p holds finite, in-range coordinates.
func Validate(p Point) error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return fmt.Errorf("%v: %w", p, ErrNotFinite)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("lat=%v: %w", p.Lat, ErrLatitudeRange)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("lng=%v: %w", p.Lng, ErrLongitudeRange)
	}

	return nil
}

// normalize clamps latitude into [-90,90] and wraps longitude into [-180,180).
func normalize(p Point) Point {
	if p.Lat > 90 {
		p.Lat = 90
	} else if p.Lat < -90 {
		p.Lat = -90
	}
	if p.Lng < -180 || p.Lng >= 180 {
		p.Lng = math.Mod(p.Lng+180, 360)
		if p.Lng < 0 {
			p.Lng += 360
		}
		p.Lng -= 180
	}

	return p
}

// Same reports whether a and b denote the same place on the ellipsoid:
// longitudes 180 and -180 coincide, as do all longitudes at a pole.
func Same(a, b Point) bool {
	a, b = normalize(a), normalize(b)
	if a.Lat != b.Lat {
		return false
	}

	return a.Lng == b.Lng || math.Abs(a.Lat) == 90
}

// less orders points by latitude, then longitude.
func less(a, b Point) bool {
	if a.Lat != b.Lat {
		return a.Lat < b.Lat
	}

	return a.Lng < b.Lng
}
