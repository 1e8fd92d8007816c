package engine

import (
	"testing"

	"github.com/boykefeng/sloperoute/pkg/dataset"
	"github.com/boykefeng/sloperoute/pkg/geo"
	"github.com/boykefeng/sloperoute/pkg/routegraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRecords() []dataset.SegmentRecord {
	mk := func(slat, slon, elat, elon, length, slope float64) dataset.SegmentRecord {
		return dataset.SegmentRecord{
			StartLat: slat, StartLon: slon,
			EndLat: elat, EndLon: elon,
			Length: length, SlopeAbs: slope,
		}
	}
	return []dataset.SegmentRecord{
		mk(40.40, -80.00, 40.41, -80.00, 100, 2.0),
		mk(40.41, -80.00, 40.42, -80.00, 100, 2.0),
		mk(40.40, -80.00, 40.42, -80.00, 150, 9.0), // steep shortcut
		mk(40.42, -80.00, 40.41, -80.00, 100, 2.0),
	}
}

func newTestEngine(t *testing.T, opts ...Option) *RouteEngine {
	t.Helper()
	re, err := NewRouteEngine(zap.NewNop(), testRecords(), opts...)
	require.NoError(t, err)
	return re
}

func TestRouteEndToEnd(t *testing.T) {
	re := newTestEngine(t)

	origin := geo.NewCoordinate(40.401, -80.001)
	destination := geo.NewCoordinate(40.419, -79.999)

	summary, err := re.Route(5.0, origin, destination)
	require.NoError(t, err)

	assert.Equal(t, 200.0, summary.Distance, "gentle two-hop route under a low threshold")
	assert.Equal(t, origin, summary.Origin)
	assert.Equal(t, geo.NewCoordinate(40.40, -80.00), summary.SnappedOrigin)
	assert.Equal(t, geo.NewCoordinate(40.42, -80.00), summary.SnappedDestination)
	assert.NotEmpty(t, summary.EncodedPolyline)
	require.NotEmpty(t, summary.Polyline)
	assert.Equal(t, summary.SnappedOrigin, summary.Polyline[0])
	assert.Equal(t, summary.SnappedDestination, summary.Polyline[len(summary.Polyline)-1])
	assert.InDelta(t, 40.41, summary.Center.Lat, 0.01)
}

func TestRouteThresholdUnlocksShortcut(t *testing.T) {
	re := newTestEngine(t)

	origin := geo.NewCoordinate(40.40, -80.00)
	destination := geo.NewCoordinate(40.42, -80.00)

	summary, err := re.Route(10.0, origin, destination)
	require.NoError(t, err)
	assert.Equal(t, 150.0, summary.Distance, "steep shortcut admitted at threshold 10")
}

func TestRouteEmptyFilter(t *testing.T) {
	re := newTestEngine(t)

	_, err := re.Route(0.5, geo.NewCoordinate(40.40, -80.00), geo.NewCoordinate(40.42, -80.00))
	assert.ErrorIs(t, err, routegraph.ErrEmptyFilter)
}

func TestRouteNoRoute(t *testing.T) {
	records := append(testRecords(), dataset.SegmentRecord{
		StartLat: 41.0, StartLon: -81.0, EndLat: 41.0, EndLon: -81.01,
		Length: 50, SlopeAbs: 1.0,
	})
	re, err := NewRouteEngine(zap.NewNop(), records)
	require.NoError(t, err)

	_, err = re.Route(5.0, geo.NewCoordinate(41.0, -81.01), geo.NewCoordinate(40.40, -80.00))
	assert.ErrorIs(t, err, routegraph.ErrNoRoute)
}

func TestRouteWithCacheAndSpatialIndex(t *testing.T) {
	re := newTestEngine(t, WithGraphCache(4), WithSpatialIndex(true))

	origin := geo.NewCoordinate(40.40, -80.00)
	destination := geo.NewCoordinate(40.42, -80.00)

	first, err := re.Route(5.0, origin, destination)
	require.NoError(t, err)
	second, err := re.Route(5.0, origin, destination)
	require.NoError(t, err)
	assert.Equal(t, first.Distance, second.Distance)

	tg, ok := re.cache.Get(5.0)
	require.True(t, ok, "graph for threshold 5 stays cached")
	assert.NotNil(t, tg.index)
}

func TestSlopeSummary(t *testing.T) {
	re := newTestEngine(t)
	s := re.SlopeSummary()
	assert.Equal(t, 4, s.Records)
	assert.Equal(t, 2.0, s.MinSlope)
	assert.Equal(t, 9.0, s.MaxSlope)
}
