package routegraph

import (
	"testing"

	"github.com/boykefeng/sloperoute/pkg/dataset"
	"github.com/boykefeng/sloperoute/pkg/geo"
	"github.com/paulmach/orb"
)

func TestAssemblePolylineSwapsLonLat(t *testing.T) {
	rec := seg(40.0, -80.0, 40.1, -79.9, 100, 1.0)
	rec.Geometry = orb.LineString{
		{-80.0, 40.0}, {-79.95, 40.05}, {-79.9, 40.1},
	}

	g := mustBuild(t, []dataset.SegmentRecord{rec}, 5)
	u := mustNodeID(t, g, 40.0, -80.0)
	v := mustNodeID(t, g, 40.1, -79.9)
	path, err := ShortestPath(g, u, v)
	if err != nil {
		t.Fatalf("shortest path: %v", err)
	}

	coords := AssemblePolyline(g, path)
	want := []geo.Coordinate{
		{Lat: 40.0, Lon: -80.0}, {Lat: 40.05, Lon: -79.95}, {Lat: 40.1, Lon: -79.9},
	}
	if len(coords) != len(want) {
		t.Fatalf("got %d vertices, want %d", len(coords), len(want))
	}
	for i := range want {
		if coords[i] != want[i] {
			t.Errorf("vertex %d: got %v, want %v (order must survive the lon/lat swap)", i, coords[i], want[i])
		}
	}
}

func TestAssemblePolylineStraightFallback(t *testing.T) {
	g := mustBuild(t, []dataset.SegmentRecord{
		seg(1, 2, 3, 4, 100, 1.0),
	}, 5)
	u := mustNodeID(t, g, 1, 2)
	v := mustNodeID(t, g, 3, 4)
	path, err := ShortestPath(g, u, v)
	if err != nil {
		t.Fatalf("shortest path: %v", err)
	}

	coords := AssemblePolyline(g, path)
	want := []geo.Coordinate{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}}
	if len(coords) != 2 || coords[0] != want[0] || coords[1] != want[1] {
		t.Errorf("got %v, want straight segment %v", coords, want)
	}
}

func TestAssemblePolylineSingleNodePath(t *testing.T) {
	g := mustBuild(t, []dataset.SegmentRecord{
		seg(1, 2, 3, 4, 100, 1.0),
	}, 5)
	u := mustNodeID(t, g, 1, 2)
	path, err := ShortestPath(g, u, u)
	if err != nil {
		t.Fatalf("shortest path: %v", err)
	}

	coords := AssemblePolyline(g, path)
	if len(coords) != 1 || coords[0] != (geo.Coordinate{Lat: 1, Lon: 2}) {
		t.Errorf("got %v, want the single node coordinate", coords)
	}
}
