package routegraph

import (
	"errors"

	"github.com/boykefeng/sloperoute/pkg/geo"
)

var ErrNoNodes = errors.New("route graph has no nodes")

// NearestNode returns the graph node closest to target under euclidean
// distance in the (lon, lat) plane.
//
// This is a deliberate linear scan: per-threshold graphs are a few thousand
// nodes, and scanning in ascending node id makes tie-breaking reproducible
// (the first node at minimum distance wins). spatialindex.NodeIndex offers an
// r-tree accelerated variant over the same metric.
func NearestNode(g *RouteGraph, target geo.Coordinate) (NodeID, error) {
	if g.NumberOfNodes() == 0 {
		return INVALID_NODE_ID, ErrNoNodes
	}

	best := NodeID(0)
	bestDist := geo.PlanarDistance(target, g.nodes[0].Coordinate())
	for id := 1; id < len(g.nodes); id++ {
		d := geo.PlanarDistance(target, g.nodes[id].Coordinate())
		if d < bestDist {
			best = NodeID(id)
			bestDist = d
		}
	}
	return best, nil
}
