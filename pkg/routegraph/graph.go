package routegraph

import (
	"github.com/boykefeng/sloperoute/pkg/geo"
	"github.com/paulmach/orb"
)

type NodeID int32
type EdgeID int32

const (
	INVALID_NODE_ID NodeID = -1
	INVALID_EDGE_ID EdgeID = -1
)

type Node struct {
	id  NodeID
	lat float64
	lon float64
}

func (n Node) GetID() NodeID {
	return n.id
}

func (n Node) GetLat() float64 {
	return n.lat
}

func (n Node) GetLon() float64 {
	return n.lon
}

func (n Node) Coordinate() geo.Coordinate {
	return geo.NewCoordinate(n.lat, n.lon)
}

// Edge is one directed arc of the multigraph. Multiple edges between the same
// (from, to) pair are kept as distinct edges, one per source record.
type Edge struct {
	id       EdgeID
	from     NodeID
	to       NodeID
	length   float64
	slopeAbs float64
	geometry orb.LineString
}

func (e Edge) GetID() EdgeID {
	return e.id
}

func (e Edge) GetFrom() NodeID {
	return e.from
}

func (e Edge) GetTo() NodeID {
	return e.to
}

// GetLength returns the edge length in meters. Shortest-path weight.
func (e Edge) GetLength() float64 {
	return e.length
}

func (e Edge) GetSlopeAbs() float64 {
	return e.slopeAbs
}

// GetGeometry returns the centerline in (lon, lat) vertex order, nil when the
// source record had none.
func (e Edge) GetGeometry() orb.LineString {
	return e.geometry
}

// RouteGraph is a directed multigraph over deduplicated coordinate nodes,
// built fresh per slope threshold and immutable afterwards. Sharing a built
// graph across goroutines is safe; rebuild instead of mutating.
type RouteGraph struct {
	nodes    []Node
	edges    []Edge
	outEdges [][]EdgeID
	inEdges  [][]EdgeID

	threshold float64
	resolver  NodeResolver
}

func (g *RouteGraph) NumberOfNodes() int {
	return len(g.nodes)
}

func (g *RouteGraph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *RouteGraph) GetThreshold() float64 {
	return g.threshold
}

func (g *RouteGraph) GetNode(id NodeID) Node {
	return g.nodes[id]
}

func (g *RouteGraph) GetEdge(id EdgeID) Edge {
	return g.edges[id]
}

func (g *RouteGraph) GetNodeCoordinates(id NodeID) (float64, float64) {
	n := g.nodes[id]
	return n.lat, n.lon
}

// CoordinateID resolves an exact coordinate back to its node id, exposing the
// coordinate-to-id mapping that was built during graph construction.
func (g *RouteGraph) CoordinateID(lat, lon float64) (NodeID, bool) {
	return g.resolver.Lookup(lat, lon)
}

// ForOutEdgesOf visits every out-edge of u in ascending edge id order.
func (g *RouteGraph) ForOutEdgesOf(u NodeID, fn func(e Edge)) {
	for _, eid := range g.outEdges[u] {
		fn(g.edges[eid])
	}
}

// ForInEdgesOf visits every in-edge of v in ascending edge id order.
func (g *RouteGraph) ForInEdgesOf(v NodeID, fn func(e Edge)) {
	for _, eid := range g.inEdges[v] {
		fn(g.edges[eid])
	}
}

// MinLengthEdge returns the shortest edge u -> v. When parallel edges tie on
// length exactly, the lowest edge id wins, so the choice is stable within a
// run. ok is false when no edge connects the pair.
func (g *RouteGraph) MinLengthEdge(u, v NodeID) (Edge, bool) {
	best := INVALID_EDGE_ID
	for _, eid := range g.outEdges[u] {
		e := g.edges[eid]
		if e.to != v {
			continue
		}
		if best == INVALID_EDGE_ID || e.length < g.edges[best].length {
			best = eid
		}
	}
	if best == INVALID_EDGE_ID {
		return Edge{}, false
	}
	return g.edges[best], true
}

func (g *RouteGraph) addNode(id NodeID, lat, lon float64) {
	g.nodes = append(g.nodes, Node{id: id, lat: lat, lon: lon})
	g.outEdges = append(g.outEdges, nil)
	g.inEdges = append(g.inEdges, nil)
}

func (g *RouteGraph) addEdge(from, to NodeID, length, slopeAbs float64, geometry orb.LineString) {
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, Edge{
		id:       id,
		from:     from,
		to:       to,
		length:   length,
		slopeAbs: slopeAbs,
		geometry: geometry,
	})
	g.outEdges[from] = append(g.outEdges[from], id)
	g.inEdges[to] = append(g.inEdges[to], id)
}
