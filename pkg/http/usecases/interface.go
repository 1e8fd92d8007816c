package usecases

import (
	"context"

	"github.com/boykefeng/sloperoute/pkg/dataset"
	"github.com/boykefeng/sloperoute/pkg/engine"
	"github.com/boykefeng/sloperoute/pkg/geo"
)

type RoutePlanner interface {
	Route(threshold float64, origin, destination geo.Coordinate) (*engine.RouteSummary, error)
	SlopeSummary() dataset.SlopeSummary
}

// Geocoder turns a free-form address into a coordinate. Implementations live
// outside this module; failures must be returned untouched so callers can
// tell a bad address apart from a routing failure.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Coordinate, error)
}
