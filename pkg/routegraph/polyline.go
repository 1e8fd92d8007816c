package routegraph

import (
	"github.com/boykefeng/sloperoute/pkg/geo"
)

// AssemblePolyline converts a resolved path into one continuous renderable
// polyline in (lat, lon) order.
//
// Hops whose chosen edge carries geometry contribute the stored vertices,
// converted from the dataset's (lon, lat) order and preserving vertex order.
// Hops without geometry contribute the straight segment between the two node
// coordinates. Repeated vertices at hop boundaries are kept as-is.
func AssemblePolyline(g *RouteGraph, path *ResolvedPath) []geo.Coordinate {
	if len(path.Nodes) == 0 {
		return nil
	}
	if len(path.Edges) == 0 {
		return []geo.Coordinate{g.GetNode(path.Nodes[0]).Coordinate()}
	}

	coords := make([]geo.Coordinate, 0, 2*len(path.Edges))
	for _, e := range path.Edges {
		if geom := e.GetGeometry(); geom != nil {
			for _, pt := range geom {
				coords = append(coords, geo.NewCoordinate(pt.Lat(), pt.Lon()))
			}
			continue
		}
		coords = append(coords,
			g.GetNode(e.GetFrom()).Coordinate(),
			g.GetNode(e.GetTo()).Coordinate())
	}
	return coords
}
