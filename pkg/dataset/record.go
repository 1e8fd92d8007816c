package dataset

import (
	"fmt"
	"strings"

	"github.com/boykefeng/sloperoute/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// SegmentRecord is one row of the street-slope dataset: a directed street
// segment with its endpoints, real length, absolute slope and, when the
// source provides it, the full centerline geometry.
type SegmentRecord struct {
	StartLat float64
	StartLon float64
	EndLat   float64
	EndLon   float64

	// Length of the segment in meters.
	Length float64
	// SlopeAbs is the absolute slope of the segment in percent.
	SlopeAbs float64

	// Geometry is the segment centerline as stored in the dataset, vertex
	// order (lon, lat). Nil means the segment renders as a straight line
	// between its endpoints.
	Geometry orb.LineString
}

// RecordParseError marks a single unusable row. The row is dropped from the
// dataset; the batch as a whole keeps loading.
type RecordParseError struct {
	Line  int
	Field string
	Err   error
}

func (e *RecordParseError) Error() string {
	return fmt.Sprintf("record line %d: field %q: %v", e.Line, e.Field, e.Err)
}

func (e *RecordParseError) Unwrap() error {
	return e.Err
}

// column names of the minimal csv schema.
const (
	colStartLat = "start_lat"
	colStartLon = "start_lon"
	colEndLat   = "end_lat"
	colEndLon   = "end_lon"
	colLength   = "length"
	colSlopeAbs = "abs_slope_percentage"
	colGeometry = "geometry"
)

var requiredColumns = []string{
	colStartLat, colStartLon, colEndLat, colEndLon, colLength, colSlopeAbs,
}

// ParseRecord builds a SegmentRecord from one csv row. header maps a trimmed
// column name to its index in row.
//
// Coordinates, length and slope must parse; a failure invalidates the whole
// row so a half-parsed record can never poison the slope filter or the edge
// weights downstream. A malformed geometry column only degrades the record
// to straight-line rendering.
func ParseRecord(header map[string]int, row []string, line int) (SegmentRecord, error) {
	var rec SegmentRecord

	numeric := []struct {
		col string
		dst *float64
	}{
		{colStartLat, &rec.StartLat},
		{colStartLon, &rec.StartLon},
		{colEndLat, &rec.EndLat},
		{colEndLon, &rec.EndLon},
		{colLength, &rec.Length},
		{colSlopeAbs, &rec.SlopeAbs},
	}

	for _, f := range numeric {
		idx, ok := header[f.col]
		if !ok || idx >= len(row) {
			return SegmentRecord{}, &RecordParseError{Line: line, Field: f.col, Err: fmt.Errorf("column missing")}
		}
		val, err := util.StringToFloat64(strings.TrimSpace(row[idx]))
		if err != nil {
			return SegmentRecord{}, &RecordParseError{Line: line, Field: f.col, Err: err}
		}
		*f.dst = val
	}

	if rec.Length < 0 {
		return SegmentRecord{}, &RecordParseError{Line: line, Field: colLength, Err: fmt.Errorf("negative length %f", rec.Length)}
	}
	if rec.SlopeAbs < 0 {
		return SegmentRecord{}, &RecordParseError{Line: line, Field: colSlopeAbs, Err: fmt.Errorf("negative slope %f", rec.SlopeAbs)}
	}

	if idx, ok := header[colGeometry]; ok && idx < len(row) {
		raw := strings.TrimSpace(row[idx])
		if raw != "" {
			ls, err := wkt.UnmarshalLineString(raw)
			if err == nil {
				rec.Geometry = ls
			}
			// parse failure keeps the record, without geometry
		}
	}

	return rec, nil
}
