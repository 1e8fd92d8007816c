package routegraph

import (
	"errors"

	"github.com/boykefeng/sloperoute/pkg/dataset"
)

// ErrEmptyFilter reports that no segment in the dataset satisfies the slope
// threshold. Distinct from a built graph with no path between two nodes.
var ErrEmptyFilter = errors.New("no street segments satisfy the slope threshold")

type BuildOption func(*buildConfig)

type buildConfig struct {
	resolver NodeResolver
}

// WithResolver overrides the node identity strategy used during the build.
// The resolver must be empty: assigned ids index into the new graph.
func WithResolver(r NodeResolver) BuildOption {
	return func(c *buildConfig) {
		c.resolver = r
	}
}

// Build filters records by threshold and assembles the directed multigraph.
//
// A record survives the filter when SlopeAbs <= threshold. Endpoints resolve
// to node ids through the resolver (exact coordinate equality by default);
// each surviving record contributes its own edge even when another record
// already connects the same node pair.
func Build(records []dataset.SegmentRecord, threshold float64, opts ...BuildOption) (*RouteGraph, error) {
	cfg := buildConfig{resolver: NewExactResolver()}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &RouteGraph{
		threshold: threshold,
		resolver:  cfg.resolver,
	}

	for _, rec := range records {
		if rec.SlopeAbs > threshold {
			continue
		}

		u, created := cfg.resolver.Resolve(rec.StartLat, rec.StartLon)
		if created {
			g.addNode(u, rec.StartLat, rec.StartLon)
		}
		v, created := cfg.resolver.Resolve(rec.EndLat, rec.EndLon)
		if created {
			g.addNode(v, rec.EndLat, rec.EndLon)
		}

		g.addEdge(u, v, rec.Length, rec.SlopeAbs, rec.Geometry)
	}

	if len(g.edges) == 0 {
		return nil, ErrEmptyFilter
	}
	return g, nil
}
