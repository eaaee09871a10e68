// Package geo - inverse geodesic on the WGS-84 ellipsoid.
//
// Vincenty (1975), "Direct and inverse solutions of geodesics on the
// ellipsoid with application of nested equations". The iteration on the
// auxiliary-sphere longitude λ stops when |Δλ| < convergenceTol or after
// maxIterations; on divergence we fall back to Haversine.
//
// Determinism:
//   - Inputs are normalized, then ordered with less() so the same arithmetic
//     sequence runs for (a,b) and (b,a).
package geo

import "math"

// WGS-84 ellipsoid parameters.
const (
	// SemiMajorAxisM is the equatorial radius a in meters.
	SemiMajorAxisM = 6378137.0

	// Flattening is f = 1/298.257223563.
	Flattening = 1 / 298.257223563

	// SemiMinorAxisM is the polar radius b = (1-f)·a in meters.
	SemiMinorAxisM = (1 - Flattening) * SemiMajorAxisM

	// MeanEarthRadiusKM is the IUGG mean radius R1 = (2a+b)/3 in kilometers.
	MeanEarthRadiusKM = 6371.0088
)

const (
	maxIterations  = 200
	convergenceTol = 1e-12
	metersPerKM    = 1000.0
	degToRad       = math.Pi / 180
)

// Distance returns the geodesic distance between a and b in kilometers.
//
// Contract:
//   - Result is ≥ 0 and finite for finite input; NaN input yields NaN.
//   - Distance(a,b) == Distance(b,a) bit for bit.
//   - Distance(a,a) == 0.
//
// Complexity: O(1).
func Distance(a, b Point) float64 {
	a, b = normalize(a), normalize(b)
	if a == b {
		return 0
	}
	if less(b, a) {
		a, b = b, a
	}

	if d, ok := vincenty(a, b); ok {
		return d
	}

	return Haversine(a, b)
}

// Haversine returns the great-circle distance between a and b in kilometers
// on a sphere of radius MeanEarthRadiusKM.
//
// Formula:
//
//	h = sin²(Δφ/2) + cos φ1 · cos φ2 · sin²(Δλ/2)
//	d = 2R · atan2(√h, √(1−h))
func Haversine(a, b Point) float64 {
	var (
		phi1 = a.Lat * degToRad
		phi2 = b.Lat * degToRad
		dPhi = (b.Lat - a.Lat) * degToRad
		dLam = (b.Lng - a.Lng) * degToRad
	)
	sPhi := math.Sin(dPhi / 2)
	sLam := math.Sin(dLam / 2)
	h := sPhi*sPhi + math.Cos(phi1)*math.Cos(phi2)*sLam*sLam
	// Rounding can push h marginally outside [0,1] for antipodal input.
	h = math.Min(1, math.Max(0, h))

	return 2 * MeanEarthRadiusKM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// vincenty solves the inverse problem; ok is false when the λ iteration
// does not converge (nearly antipodal points).
func vincenty(a, b Point) (km float64, ok bool) {
	const (
		fa = SemiMajorAxisM
		fb = SemiMinorAxisM
		f  = Flattening
	)

	var (
		L  = (b.Lng - a.Lng) * degToRad
		U1 = math.Atan((1 - f) * math.Tan(a.Lat*degToRad))
		U2 = math.Atan((1 - f) * math.Tan(b.Lat*degToRad))

		sinU1, cosU1 = math.Sincos(U1)
		sinU2, cosU2 = math.Sincos(U2)

		lambda = L
		prev   float64

		sinSigma, cosSigma, sigma float64
		cosSqAlpha, cos2SigmaM    float64
		iter                      int
	)

	for iter = 0; iter < maxIterations; iter++ {
		sinLambda, cosLambda := math.Sincos(lambda)
		t1 := cosU2 * sinLambda
		t2 := cosU1*sinU2 - sinU1*cosU2*cosLambda
		sinSigma = math.Sqrt(t1*t1 + t2*t2)
		if sinSigma == 0 {
			// Distinct points collapsing onto σ=0 is the antipodal degenerate case.
			return 0, false
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)

		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		if cosSqAlpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		} else {
			cos2SigmaM = 0 // equatorial line
		}

		C := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))
		prev = lambda
		lambda = L + (1-C)*f*sinAlpha*
			(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

		if math.Abs(lambda) > math.Pi {
			return 0, false
		}
		if math.Abs(lambda-prev) < convergenceTol {
			break
		}
	}
	if iter == maxIterations {
		return 0, false
	}

	uSq := cosSqAlpha * (fa*fa - fb*fb) / (fb * fb)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	meters := fb * A * (sigma - deltaSigma)
	if meters < 0 || math.IsNaN(meters) {
		return 0, false
	}

	return meters / metersPerKM, true
}
