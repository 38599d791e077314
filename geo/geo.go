// Package geo computes great-circle distances between survey positions.
//
// Positions are orb.Point values, which store longitude first:
//
//	p := orb.Point{138.6007, -34.9285} // lon, lat
//	d := geo.Distance(ref, p)          // metres
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// EarthRadius is the mean spherical earth radius in metres.
const EarthRadius = 6371000.0

// Distance returns the haversine distance in metres between a and b.
//
// The function is total: non-finite coordinates produce a non-finite result
// rather than an error.
func Distance(a, b orb.Point) float64 {
	return DistanceLatLon(a.Lat(), a.Lon(), b.Lat(), b.Lon())
}

// DistanceLatLon is Distance for scalar coordinates in degrees.
func DistanceLatLon(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := deg2rad(lat1)
	p2 := deg2rad(lat2)
	dPhi := deg2rad(lat2 - lat1)
	dLambda := deg2rad(lon2 - lon1)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	h := sinPhi*sinPhi + math.Cos(p1)*math.Cos(p2)*sinLambda*sinLambda

	// rounding can push h just past 1 for antipodal points
	if h > 1 {
		h = 1
	}

	return 2 * EarthRadius * math.Asin(math.Sqrt(h))
}

// Finite reports whether both coordinates of p are finite numbers.
func Finite(p orb.Point) bool {
	return !math.IsNaN(p[0]) && !math.IsInf(p[0], 0) &&
		!math.IsNaN(p[1]) && !math.IsInf(p[1], 0)
}

func deg2rad(d float64) float64 {
	return d * math.Pi / 180
}
