package osmextract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/boykefeng/sloperoute/pkg/util"
	"github.com/paulmach/orb/encoding/wkt"
	"go.uber.org/zap"
)

// elevation lookups key endpoints on 6-decimal coordinates, matching the
// precision the elevation provider echoes back.
const elevPrecision = 6

type elevKey struct {
	lat, lon float64
}

func newElevKey(lat, lon float64) elevKey {
	return elevKey{
		lat: util.RoundFloat(lat, elevPrecision),
		lon: util.RoundFloat(lon, elevPrecision),
	}
}

// ElevationGrid maps segment endpoint coordinates to elevation in meters.
// Producing this file (polling an elevation API) is the caller's business;
// this package only joins it.
type ElevationGrid map[elevKey]float64

func (g ElevationGrid) At(lat, lon float64) (float64, bool) {
	v, ok := g[newElevKey(lat, lon)]
	return v, ok
}

// LoadElevations reads a csv with header lat,lon,elevation.
func LoadElevations(path string, log *zap.Logger) (ElevationGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open elevations: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("read elevations header: %w", err)
	}

	grid := make(ElevationGrid)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 3 {
			continue
		}
		lat, err1 := util.StringToFloat64(strings.TrimSpace(row[0]))
		lon, err2 := util.StringToFloat64(strings.TrimSpace(row[1]))
		elev, err3 := util.StringToFloat64(strings.TrimSpace(row[2]))
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		grid[newElevKey(lat, lon)] = elev
	}

	log.Info("elevation grid loaded", zap.String("path", path), zap.Int("points", len(grid)))
	return grid, nil
}

// SlopedSegment is a segment with its slope join result. Segments missing an
// elevation at either endpoint keep HasSlope=false and are written with an
// empty slope column, which the dataset loader then drops; they are never
// zero-filled.
type SlopedSegment struct {
	Segment
	SlopeAbs float64
	HasSlope bool
}

// ApplySlopes joins the elevation grid onto segments.
// slope% = (elevation change / length) * 100.
func ApplySlopes(segments []Segment, grid ElevationGrid) []SlopedSegment {
	out := make([]SlopedSegment, 0, len(segments))
	for _, seg := range segments {
		ss := SlopedSegment{Segment: seg}

		startElev, okS := grid.At(seg.StartLat, seg.StartLon)
		endElev, okE := grid.At(seg.EndLat, seg.EndLon)
		if okS && okE && seg.Length > 0 {
			slope := (endElev - startElev) / seg.Length * 100.0
			if !math.IsInf(slope, 0) && !math.IsNaN(slope) {
				ss.SlopeAbs = math.Abs(slope)
				ss.HasSlope = true
			}
		}
		out = append(out, ss)
	}
	return out
}

// WriteCSV writes sloped segments in the minimal street-slope schema.
func WriteCSV(w io.Writer, segments []SlopedSegment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"start_lat", "start_lon", "end_lat", "end_lon", "length", "abs_slope_percentage", "geometry",
	}); err != nil {
		return err
	}

	ff := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	for _, seg := range segments {
		slope := ""
		if seg.HasSlope {
			slope = ff(seg.SlopeAbs)
		}
		if err := cw.Write([]string{
			ff(seg.StartLat), ff(seg.StartLon), ff(seg.EndLat), ff(seg.EndLon),
			ff(seg.Length), slope, wkt.MarshalString(seg.Geometry),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
