package dataset

import (
	"math"
)

// SlopeSummary describes the slope distribution of a dataset so clients can
// bound their threshold input.
type SlopeSummary struct {
	Records  int     `json:"records"`
	MinSlope float64 `json:"min_slope"`
	MaxSlope float64 `json:"max_slope"`

	// CountAtThreshold[t] is the number of segments with SlopeAbs <= t for
	// each integer threshold 0..ceil(MaxSlope).
	CountAtThreshold []int `json:"count_at_threshold"`
}

// Summarize computes the slope distribution of records.
func Summarize(records []SegmentRecord) SlopeSummary {
	if len(records) == 0 {
		return SlopeSummary{}
	}

	s := SlopeSummary{
		Records:  len(records),
		MinSlope: math.Inf(1),
		MaxSlope: math.Inf(-1),
	}
	for _, rec := range records {
		s.MinSlope = math.Min(s.MinSlope, rec.SlopeAbs)
		s.MaxSlope = math.Max(s.MaxSlope, rec.SlopeAbs)
	}

	buckets := int(math.Ceil(s.MaxSlope)) + 1
	s.CountAtThreshold = make([]int, buckets)
	for _, rec := range records {
		// a segment counts for every threshold it satisfies
		from := int(math.Ceil(rec.SlopeAbs))
		for t := from; t < buckets; t++ {
			s.CountAtThreshold[t]++
		}
	}
	return s
}
