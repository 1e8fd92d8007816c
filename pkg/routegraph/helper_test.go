package routegraph

import (
	"testing"

	"github.com/boykefeng/sloperoute/pkg/dataset"
)

func seg(startLat, startLon, endLat, endLon, length, slopeAbs float64) dataset.SegmentRecord {
	return dataset.SegmentRecord{
		StartLat: startLat,
		StartLon: startLon,
		EndLat:   endLat,
		EndLon:   endLon,
		Length:   length,
		SlopeAbs: slopeAbs,
	}
}

func mustBuild(t *testing.T, records []dataset.SegmentRecord, threshold float64, opts ...BuildOption) *RouteGraph {
	t.Helper()
	g, err := Build(records, threshold, opts...)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return g
}

func mustNodeID(t *testing.T, g *RouteGraph, lat, lon float64) NodeID {
	t.Helper()
	id, ok := g.CoordinateID(lat, lon)
	if !ok {
		t.Fatalf("no node at (%v, %v)", lat, lon)
	}
	return id
}
