package engine

import (
	"fmt"

	"github.com/boykefeng/sloperoute/pkg/dataset"
	"github.com/boykefeng/sloperoute/pkg/geo"
	"github.com/boykefeng/sloperoute/pkg/routegraph"
	"github.com/boykefeng/sloperoute/pkg/spatialindex"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// RouteEngine computes slope-constrained shortest routes over a street
// segment dataset. The record set is read-only; every threshold gets its own
// freshly built graph, so concurrent Route calls need no coordination.
type RouteEngine struct {
	log     *zap.Logger
	records []dataset.SegmentRecord
	summary dataset.SlopeSummary

	// graphs are immutable once built, so caching them per threshold is safe
	// to share across requests. nil cache means rebuild on every call.
	cache           *lru.Cache[float64, *thresholdGraph]
	useSpatialIndex bool
}

type thresholdGraph struct {
	graph *routegraph.RouteGraph
	index *spatialindex.NodeIndex
}

type Option func(*RouteEngine) error

// WithGraphCache keeps up to size built graphs, keyed by threshold. Mirrors
// the per-threshold preloading of the upstream dataset pipeline.
func WithGraphCache(size int) Option {
	return func(re *RouteEngine) error {
		cache, err := lru.New[float64, *thresholdGraph](size)
		if err != nil {
			return fmt.Errorf("graph cache: %w", err)
		}
		re.cache = cache
		return nil
	}
}

// WithSpatialIndex snaps route endpoints through an r-tree instead of the
// linear node scan.
func WithSpatialIndex(enabled bool) Option {
	return func(re *RouteEngine) error {
		re.useSpatialIndex = enabled
		return nil
	}
}

func NewRouteEngine(log *zap.Logger, records []dataset.SegmentRecord, opts ...Option) (*RouteEngine, error) {
	re := &RouteEngine{
		log:     log,
		records: records,
		summary: dataset.Summarize(records),
	}
	for _, opt := range opts {
		if err := opt(re); err != nil {
			return nil, err
		}
	}

	log.Info("route engine ready",
		zap.Int("records", len(records)),
		zap.Float64("minSlope", re.summary.MinSlope),
		zap.Float64("maxSlope", re.summary.MaxSlope),
		zap.Bool("graphCache", re.cache != nil),
		zap.Bool("spatialIndex", re.useSpatialIndex))
	return re, nil
}

// RouteSummary is the renderable result of one route computation.
type RouteSummary struct {
	// Polyline in (lat, lon) order, assembled from real edge geometry where
	// the dataset provides it.
	Polyline        []geo.Coordinate
	EncodedPolyline string

	// Distance in meters, summed over the chosen edges.
	Distance float64

	// Requested coordinates, rendered as start/end markers.
	Origin      geo.Coordinate
	Destination geo.Coordinate

	// Graph nodes the endpoints snapped to.
	SnappedOrigin      geo.Coordinate
	SnappedDestination geo.Coordinate

	// Midpoint of the markers, the viewport center for rendering.
	Center geo.Coordinate
}

// Route builds (or fetches) the graph for threshold, snaps origin and
// destination to their nearest nodes, and solves the shortest path.
//
// Typed failures pass through unchanged: routegraph.ErrEmptyFilter when no
// segment satisfies the threshold, routegraph.ErrNoRoute when the endpoints
// are disconnected in the filtered graph.
func (re *RouteEngine) Route(threshold float64, origin, destination geo.Coordinate) (*RouteSummary, error) {
	tg, err := re.graphForThreshold(threshold)
	if err != nil {
		return nil, err
	}

	srcNode, err := re.locate(tg, origin)
	if err != nil {
		return nil, err
	}
	dstNode, err := re.locate(tg, destination)
	if err != nil {
		return nil, err
	}

	path, err := routegraph.ShortestPath(tg.graph, srcNode, dstNode)
	if err != nil {
		return nil, err
	}

	coords := routegraph.AssemblePolyline(tg.graph, path)
	return &RouteSummary{
		Polyline:           coords,
		EncodedPolyline:    geo.PolylineFromCoords(coords),
		Distance:           path.TotalLength,
		Origin:             origin,
		Destination:        destination,
		SnappedOrigin:      tg.graph.GetNode(srcNode).Coordinate(),
		SnappedDestination: tg.graph.GetNode(dstNode).Coordinate(),
		Center:             geo.GeodesicMidpoint(origin, destination),
	}, nil
}

// SlopeSummary reports the slope distribution of the underlying dataset.
func (re *RouteEngine) SlopeSummary() dataset.SlopeSummary {
	return re.summary
}

func (re *RouteEngine) graphForThreshold(threshold float64) (*thresholdGraph, error) {
	if re.cache != nil {
		if tg, ok := re.cache.Get(threshold); ok {
			return tg, nil
		}
	}

	g, err := routegraph.Build(re.records, threshold)
	if err != nil {
		return nil, err
	}
	re.log.Debug("route graph built",
		zap.Float64("threshold", threshold),
		zap.Int("nodes", g.NumberOfNodes()),
		zap.Int("edges", g.NumberOfEdges()))

	tg := &thresholdGraph{graph: g}
	if re.useSpatialIndex {
		tg.index = spatialindex.NewNodeIndex(g)
	}
	if re.cache != nil {
		re.cache.Add(threshold, tg)
	}
	return tg, nil
}

func (re *RouteEngine) locate(tg *thresholdGraph, target geo.Coordinate) (routegraph.NodeID, error) {
	if tg.index != nil {
		if id, ok := tg.index.Nearest(target); ok {
			return id, nil
		}
	}
	return routegraph.NearestNode(tg.graph, target)
}
