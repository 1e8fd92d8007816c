package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/boykefeng/sloperoute/pkg/dataset"
	"github.com/boykefeng/sloperoute/pkg/engine"
	"github.com/boykefeng/sloperoute/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPlanner struct {
	lastThreshold float64
	lastOrigin    geo.Coordinate
	lastDest      geo.Coordinate
	summary       *engine.RouteSummary
	err           error
}

func (s *stubPlanner) Route(threshold float64, origin, destination geo.Coordinate) (*engine.RouteSummary, error) {
	s.lastThreshold = threshold
	s.lastOrigin = origin
	s.lastDest = destination
	return s.summary, s.err
}

func (s *stubPlanner) SlopeSummary() dataset.SlopeSummary {
	return dataset.SlopeSummary{Records: 42}
}

type stubGeocoder struct {
	coords map[string]geo.Coordinate
	err    error
}

func (s *stubGeocoder) Geocode(_ context.Context, address string) (geo.Coordinate, error) {
	if s.err != nil {
		return geo.Coordinate{}, s.err
	}
	return s.coords[address], nil
}

func TestRoutePassesCoordinatesThrough(t *testing.T) {
	planner := &stubPlanner{summary: &engine.RouteSummary{Distance: 123}}
	rs := NewRoutingService(zap.NewNop(), planner, nil)

	summary, err := rs.Route(5.0, 40.44, -79.99, 40.45, -79.98)
	require.NoError(t, err)
	assert.Equal(t, 123.0, summary.Distance)
	assert.Equal(t, 5.0, planner.lastThreshold)
	assert.Equal(t, geo.NewCoordinate(40.44, -79.99), planner.lastOrigin)
	assert.Equal(t, geo.NewCoordinate(40.45, -79.98), planner.lastDest)
}

func TestRouteBetweenAddresses(t *testing.T) {
	planner := &stubPlanner{summary: &engine.RouteSummary{Distance: 55}}
	geocoder := &stubGeocoder{coords: map[string]geo.Coordinate{
		"downtown": geo.NewCoordinate(40.4406, -79.9959),
		"oakland":  geo.NewCoordinate(40.4444, -79.9436),
	}}
	rs := NewRoutingService(zap.NewNop(), planner, geocoder)

	summary, err := rs.RouteBetweenAddresses(context.Background(), "downtown", "oakland", 8.0)
	require.NoError(t, err)
	assert.Equal(t, 55.0, summary.Distance)
	assert.Equal(t, geo.NewCoordinate(40.4406, -79.9959), planner.lastOrigin)
	assert.Equal(t, geo.NewCoordinate(40.4444, -79.9436), planner.lastDest)
}

func TestRouteBetweenAddressesGeocodeFailurePropagates(t *testing.T) {
	sentinel := errors.New("address not found")
	planner := &stubPlanner{}
	rs := NewRoutingService(zap.NewNop(), planner, &stubGeocoder{err: sentinel})

	_, err := rs.RouteBetweenAddresses(context.Background(), "nowhere", "anywhere", 5.0)
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel, "geocoder failures must surface unchanged")
	assert.Zero(t, planner.lastThreshold, "planner must not run after a geocode failure")
}

func TestRouteBetweenAddressesWithoutGeocoder(t *testing.T) {
	rs := NewRoutingService(zap.NewNop(), &stubPlanner{}, nil)

	_, err := rs.RouteBetweenAddresses(context.Background(), "a", "b", 5.0)
	assert.ErrorIs(t, err, ErrNoGeocoder)
}

func TestSlopeSummaryDelegates(t *testing.T) {
	rs := NewRoutingService(zap.NewNop(), &stubPlanner{}, nil)
	assert.Equal(t, 42, rs.SlopeSummary().Records)
}
