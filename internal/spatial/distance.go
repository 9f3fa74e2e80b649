package spatial

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// HaversineDistance calculates the great-circle distance between two points in meters
// using the Haversine formula
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// PlanarDistance is the Euclidean distance in degree space. Only meaningful
// for small extents such as a single city.
func PlanarDistance(lat1, lon1, lat2, lon2 float64) float64 {
	return math.Hypot(lat1-lat2, lon1-lon2)
}

// Interpolate returns the point at fraction f along the great circle from p1 to p2.
// orb points are [lon, lat].
func Interpolate(p1, p2 orb.Point, f float64) orb.Point {
	a := s2.PointFromLatLng(s2.LatLngFromDegrees(p1.Lat(), p1.Lon()))
	b := s2.PointFromLatLng(s2.LatLngFromDegrees(p2.Lat(), p2.Lon()))
	ll := s2.LatLngFromPoint(s2.Interpolate(f, a, b))
	return orb.Point{ll.Lng.Degrees(), ll.Lat.Degrees()}
}

// InBound reports whether lat/lng lies inside b, edges included
func InBound(b orb.Bound, lat, lng float64) bool {
	return lat >= b.Min.Lat() && lat <= b.Max.Lat() && lng >= b.Min.Lon() && lng <= b.Max.Lon()
}

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)
