package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/boykefeng/sloperoute/pkg/dataset"
	"github.com/boykefeng/sloperoute/pkg/engine"
	"github.com/boykefeng/sloperoute/pkg/geo"
	"go.uber.org/zap"
)

// ErrNoGeocoder reports that address routing was requested but no geocoder
// was wired into the service.
var ErrNoGeocoder = errors.New("no geocoder configured")

type RoutingService struct {
	log      *zap.Logger
	planner  RoutePlanner
	geocoder Geocoder
}

func NewRoutingService(log *zap.Logger, planner RoutePlanner, geocoder Geocoder) *RoutingService {
	return &RoutingService{
		log:      log,
		planner:  planner,
		geocoder: geocoder,
	}
}

func (rs *RoutingService) Route(threshold, origLat, origLon, dstLat, dstLon float64) (*engine.RouteSummary, error) {
	return rs.planner.Route(threshold,
		geo.NewCoordinate(origLat, origLon),
		geo.NewCoordinate(dstLat, dstLon))
}

// RouteBetweenAddresses geocodes both endpoints, then routes between the
// results. Geocoder errors are passed through unchanged.
func (rs *RoutingService) RouteBetweenAddresses(ctx context.Context, origin, destination string,
	threshold float64) (*engine.RouteSummary, error) {
	if rs.geocoder == nil {
		return nil, ErrNoGeocoder
	}

	origCoord, err := rs.geocoder.Geocode(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("geocoding origin %q: %w", origin, err)
	}
	dstCoord, err := rs.geocoder.Geocode(ctx, destination)
	if err != nil {
		return nil, fmt.Errorf("geocoding destination %q: %w", destination, err)
	}

	rs.log.Debug("geocoded route endpoints",
		zap.String("origin", origin),
		zap.String("destination", destination))

	return rs.planner.Route(threshold, origCoord, dstCoord)
}

func (rs *RoutingService) SlopeSummary() dataset.SlopeSummary {
	return rs.planner.SlopeSummary()
}
