package osmextract

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/boykefeng/sloperoute/pkg/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

type nodeRole uint8

const (
	endNode nodeRole = iota
	betweenNode
	junctionNode
)

// Segment is one directed street segment cut from an osm way: a piece of a
// way between two junction/end nodes, with its full centerline.
type Segment struct {
	StartLat float64
	StartLon float64
	EndLat   float64
	EndLon   float64

	// Length in meters, summed haversine over the centerline.
	Length float64
	// Geometry in (lon, lat) vertex order.
	Geometry orb.LineString
}

type Extractor struct {
	log *zap.Logger

	wayNodeRole map[int64]nodeRole
	nodeCoord   map[int64][2]float64 // lat, lon
}

func NewExtractor(log *zap.Logger) *Extractor {
	return &Extractor{
		log:         log,
		wayNodeRole: make(map[int64]nodeRole),
		nodeCoord:   make(map[int64][2]float64),
	}
}

// Extract scans an .osm.pbf file and cuts every accepted highway way into
// street segments, split at junction nodes. Two passes over the file: the
// first classifies way nodes, the second collects coordinates and emits
// segments. One-way tags are honored; two-way streets produce a segment per
// direction.
func (e *Extractor) Extract(ctx context.Context, pbfPath string) ([]Segment, error) {
	f, err := os.Open(pbfPath)
	if err != nil {
		return nil, fmt.Errorf("open pbf: %w", err)
	}
	defer f.Close()

	if err := e.classifyWayNodes(ctx, f); err != nil {
		return nil, err
	}
	e.log.Info("classified way nodes", zap.Int("nodes", len(e.wayNodeRole)))

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	segments, err := e.buildSegments(ctx, f)
	if err != nil {
		return nil, err
	}
	e.log.Info("extracted street segments", zap.Int("segments", len(segments)))
	return segments, nil
}

// classifyWayNodes marks each node of every accepted way as an end, an
// intermediate shape node, or a junction (shared between ways).
func (e *Extractor) classifyWayNodes(ctx context.Context, f *os.File) error {
	scanner := osmpbf.New(ctx, f, 0)
	defer scanner.Close()

	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok || len(way.Nodes) < 2 {
			continue
		}
		if !AcceptWay(way) {
			continue
		}

		for i, node := range way.Nodes {
			id := int64(node.ID)
			if _, seen := e.wayNodeRole[id]; seen {
				e.wayNodeRole[id] = junctionNode
				continue
			}
			if i == 0 || i == len(way.Nodes)-1 {
				e.wayNodeRole[id] = endNode
			} else {
				e.wayNodeRole[id] = betweenNode
			}
		}
	}
	return scanner.Err()
}

func (e *Extractor) buildSegments(ctx context.Context, f *os.File) ([]Segment, error) {
	scanner := osmpbf.New(ctx, f, 0)
	defer scanner.Close()

	var segments []Segment
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			if _, ok := e.wayNodeRole[int64(o.ID)]; ok {
				e.nodeCoord[int64(o.ID)] = [2]float64{o.Lat, o.Lon}
			}
		case *osm.Way:
			if len(o.Nodes) < 2 || !AcceptWay(o) {
				continue
			}
			segments = e.cutWay(o, segments)
		}
	}
	return segments, scanner.Err()
}

// cutWay walks the way's node list and closes a segment at every junction or
// way end. Nodes without coordinates yet (pbf ordering puts nodes first, but
// incomplete extracts happen) abort the current piece.
func (e *Extractor) cutWay(way *osm.Way, segments []Segment) []Segment {
	oneway, reversed := isOneway(way)

	var piece orb.LineString
	for i, wn := range way.Nodes {
		coord, ok := e.nodeCoord[int64(wn.ID)]
		if !ok {
			piece = nil
			continue
		}
		piece = append(piece, orb.Point{coord[1], coord[0]})

		last := i == len(way.Nodes)-1
		if len(piece) >= 2 && (last || e.wayNodeRole[int64(wn.ID)] == junctionNode) {
			segments = e.emit(piece, oneway, reversed, segments)
			piece = orb.LineString{orb.Point{coord[1], coord[0]}}
		}
	}
	return segments
}

func (e *Extractor) emit(piece orb.LineString, oneway, reversed bool, segments []Segment) []Segment {
	forward := make(orb.LineString, len(piece))
	copy(forward, piece)

	if oneway && reversed {
		forward = reverseLine(forward)
	}

	segments = append(segments, newSegment(forward))
	if !oneway {
		segments = append(segments, newSegment(reverseLine(forward)))
	}
	return segments
}

func newSegment(line orb.LineString) Segment {
	length := 0.0
	for i := 0; i+1 < len(line); i++ {
		length += geo.CalculateHaversineDistance(
			line[i].Lat(), line[i].Lon(),
			line[i+1].Lat(), line[i+1].Lon()) * 1000.0
	}
	first, last := line[0], line[len(line)-1]
	return Segment{
		StartLat: first.Lat(),
		StartLon: first.Lon(),
		EndLat:   last.Lat(),
		EndLon:   last.Lon(),
		Length:   length,
		Geometry: line,
	}
}

func reverseLine(line orb.LineString) orb.LineString {
	out := make(orb.LineString, len(line))
	for i, pt := range line {
		out[len(line)-1-i] = pt
	}
	return out
}
