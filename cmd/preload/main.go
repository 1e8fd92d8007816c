package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/boykefeng/sloperoute/pkg/dataset"
	"github.com/boykefeng/sloperoute/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	datasetPath  = flag.String("dataset", "./data/street_slopes.csv", "street slope csv")
	outDir       = flag.String("out", "./data/thresholds", "directory for per-threshold csvs")
	maxThreshold = flag.Int("max_threshold", 40, "largest slope threshold to preload")
	workers      = flag.Int("workers", 4, "concurrent writers")
)

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}

	records, err := dataset.LoadCSV(*datasetPath, log)
	if err != nil {
		panic(err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}

	g := errgroup.Group{}
	g.SetLimit(*workers)

	for threshold := 1; threshold <= *maxThreshold; threshold++ {
		threshold := threshold
		g.Go(func() error {
			filtered := make([]dataset.SegmentRecord, 0, len(records))
			for _, rec := range records {
				if rec.SlopeAbs <= float64(threshold) {
					filtered = append(filtered, rec)
				}
			}

			path := filepath.Join(*outDir, fmt.Sprintf("slope_%d.csv", threshold))
			out, err := os.Create(path)
			if err != nil {
				return err
			}
			defer out.Close()

			if err := dataset.WriteRecords(out, filtered); err != nil {
				return err
			}
			log.Info("preloaded threshold csv",
				zap.Int("threshold", threshold),
				zap.Int("records", len(filtered)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		panic(err)
	}
}
