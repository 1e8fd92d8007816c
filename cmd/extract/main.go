package main

import (
	"context"
	"flag"
	"os"

	"github.com/boykefeng/sloperoute/pkg/logger"
	"github.com/boykefeng/sloperoute/pkg/osmextract"
	"go.uber.org/zap"
)

var (
	pbfPath       = flag.String("pbf", "./data/map.osm.pbf", "osm pbf extract to scan")
	elevationPath = flag.String("elevations", "./data/elevations.csv", "elevation samples csv (lat,lon,elevation)")
	outPath       = flag.String("out", "./data/street_slopes.csv", "output street slope csv")
)

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}

	extractor := osmextract.NewExtractor(log)
	segments, err := extractor.Extract(context.Background(), *pbfPath)
	if err != nil {
		panic(err)
	}
	log.Info("extracted street segments", zap.Int("segments", len(segments)))

	grid, err := osmextract.LoadElevations(*elevationPath, log)
	if err != nil {
		panic(err)
	}

	sloped := osmextract.ApplySlopes(segments, grid)

	out, err := os.Create(*outPath)
	if err != nil {
		panic(err)
	}
	defer out.Close()

	if err := osmextract.WriteCSV(out, sloped); err != nil {
		panic(err)
	}
	log.Info("wrote street slope dataset", zap.String("path", *outPath))
}
