package main

import (
	"context"
	"flag"

	"github.com/boykefeng/sloperoute/pkg/dataset"
	"github.com/boykefeng/sloperoute/pkg/engine"
	"github.com/boykefeng/sloperoute/pkg/http"
	"github.com/boykefeng/sloperoute/pkg/http/usecases"
	"github.com/boykefeng/sloperoute/pkg/logger"
	"github.com/boykefeng/sloperoute/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	datasetPath  = flag.String("dataset", "", "street slope csv (overrides DATASET_PATH from config)")
	cacheSize    = flag.Int("graph_cache", 8, "number of per-threshold graphs kept in memory")
	spatialIndex = flag.Bool("spatial_index", true, "use an r-tree for nearest-node lookup")
	useRateLimit = flag.Bool("rate_limit", false, "enable the global request rate limiter")
	prewarm      = flag.Int("prewarm", 0, "prewarm graphs for integer thresholds 1..N before serving")
)

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		log.Warn("config file not found, using defaults", zap.Error(err))
	}
	viper.SetDefault("DATASET_PATH", "./data/street_slopes.csv")

	path := *datasetPath
	if path == "" {
		path = viper.GetString("DATASET_PATH")
	}

	records, err := dataset.LoadCSV(path, log)
	if err != nil {
		panic(err)
	}

	routeEngine, err := engine.NewRouteEngine(log, records,
		engine.WithGraphCache(*cacheSize),
		engine.WithSpatialIndex(*spatialIndex))
	if err != nil {
		panic(err)
	}

	if *prewarm > 0 {
		thresholds := make([]float64, 0, *prewarm)
		for i := 1; i <= *prewarm; i++ {
			thresholds = append(thresholds, float64(i))
		}
		if err := routeEngine.Prewarm(thresholds, 4); err != nil {
			panic(err)
		}
	}

	routingService := usecases.NewRoutingService(log, routeEngine, nil)

	api := http.NewServer(log)
	ctx, cancel := context.WithCancel(context.Background())
	if _, err := api.Use(ctx, log, *useRateLimit, routingService); err != nil {
		panic(err)
	}

	sig := http.GracefulShutdown()
	log.Info("route server stopped", zap.String("signal", sig.String()))
	cancel()
}
