package spatialindex

import (
	"github.com/boykefeng/sloperoute/pkg/geo"
	"github.com/boykefeng/sloperoute/pkg/routegraph"
	"github.com/tidwall/rtree"
)

// NodeIndex is a point r-tree over the nodes of one route graph. It answers
// nearest-node queries under the same (lon, lat) plane metric as the linear
// scan in routegraph.NearestNode, just faster on big graphs. Exact-distance
// ties may resolve to a different node than the scan; callers that need the
// scan's id ordering should use the scan.
type NodeIndex struct {
	tr *rtree.RTreeG[routegraph.NodeID]
}

// NewNodeIndex builds the index for g. The graph must not change afterwards,
// which holds for route graphs (immutable once built).
func NewNodeIndex(g *routegraph.RouteGraph) *NodeIndex {
	var tr rtree.RTreeG[routegraph.NodeID]
	for id := 0; id < g.NumberOfNodes(); id++ {
		lat, lon := g.GetNodeCoordinates(routegraph.NodeID(id))
		pt := [2]float64{lon, lat}
		tr.Insert(pt, pt, routegraph.NodeID(id))
	}
	return &NodeIndex{tr: &tr}
}

// Nearest returns the node closest to target, or ok=false on an empty index.
func (idx *NodeIndex) Nearest(target geo.Coordinate) (routegraph.NodeID, bool) {
	var (
		nearest routegraph.NodeID
		found   bool
	)
	pt := [2]float64{target.Lon, target.Lat}
	idx.tr.Nearby(
		rtree.BoxDist[float64, routegraph.NodeID](pt, pt, nil),
		func(min, max [2]float64, data routegraph.NodeID, dist float64) bool {
			nearest = data
			found = true
			return false
		},
	)
	return nearest, found
}

// Len is the number of indexed nodes.
func (idx *NodeIndex) Len() int {
	return idx.tr.Len()
}
