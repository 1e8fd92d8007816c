package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/paulmach/orb/encoding/wkt"
	"go.uber.org/zap"
)

// LoadCSV reads the street-slope dataset from path. Files ending in .bz2 are
// decompressed on the fly. Rows failing numeric parsing are dropped and
// counted, never zero-filled.
func LoadCSV(path string, log *zap.Logger) ([]SegmentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, fmt.Errorf("open bzip2 dataset: %w", err)
		}
		defer bz.Close()
		r = bz
	}

	records, dropped, err := ReadRecords(r)
	if err != nil {
		return nil, err
	}

	log.Info("street-slope dataset loaded",
		zap.String("path", path),
		zap.Int("records", len(records)),
		zap.Int("dropped", dropped))
	return records, nil
}

// ReadRecords parses the minimal csv schema from r. It returns the usable
// records and the number of rows dropped by per-row parse failures.
func ReadRecords(r io.Reader) ([]SegmentRecord, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	headerRow, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read dataset header: %w", err)
	}

	header := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		header[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := header[col]; !ok {
			return nil, 0, fmt.Errorf("dataset header misses column %q", col)
		}
	}

	var (
		records []SegmentRecord
		dropped int
		line    = 1
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read dataset row: %w", err)
		}
		line++

		if isBlank(row) {
			continue
		}

		rec, err := ParseRecord(header, row, line)
		if err != nil {
			var perr *RecordParseError
			if errors.As(err, &perr) {
				dropped++
				continue
			}
			return nil, 0, err
		}
		records = append(records, rec)
	}

	return records, dropped, nil
}

func isBlank(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// WriteRecords writes records back out in the minimal csv schema, geometry
// re-serialized as WKT. Used by the per-threshold preload tool.
func WriteRecords(w io.Writer, records []SegmentRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		colStartLat, colStartLon, colEndLat, colEndLon, colLength, colSlopeAbs, colGeometry,
	}); err != nil {
		return err
	}

	for _, rec := range records {
		geom := ""
		if rec.Geometry != nil {
			geom = wkt.MarshalString(rec.Geometry)
		}
		row := []string{
			formatFloat(rec.StartLat),
			formatFloat(rec.StartLon),
			formatFloat(rec.EndLat),
			formatFloat(rec.EndLon),
			formatFloat(rec.Length),
			formatFloat(rec.SlopeAbs),
			geom,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
