package geo

import (
	"github.com/golang/geo/s2"
)

// GeodesicMidpoint returns the point halfway along the great circle between a
// and b. Used as the viewport center for rendering a computed route.
func GeodesicMidpoint(a, b Coordinate) Coordinate {
	pa := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon))
	pb := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lon))
	mid := s2.LatLngFromPoint(s2.Interpolate(0.5, pa, pb))
	return NewCoordinate(mid.Lat.Degrees(), mid.Lng.Degrees())
}
