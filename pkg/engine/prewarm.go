package engine

import (
	"errors"
	"fmt"

	"github.com/boykefeng/sloperoute/pkg/concurrent"
	"github.com/boykefeng/sloperoute/pkg/routegraph"
	"go.uber.org/zap"
)

// Prewarm builds the graphs for the given thresholds up front and drops them
// into the cache, so the first request per threshold does not pay the build.
// Requires WithGraphCache; without a cache the built graphs would be thrown
// away, so this is a no-op then. Thresholds whose filter comes up empty are
// skipped, any other build failure aborts.
func (re *RouteEngine) Prewarm(thresholds []float64, workers int) error {
	if re.cache == nil || len(thresholds) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	type buildResult struct {
		threshold float64
		err       error
	}

	pool := concurrent.NewWorkerPool[float64, buildResult](workers, len(thresholds))
	pool.Start(func(threshold float64) buildResult {
		_, err := re.graphForThreshold(threshold)
		return buildResult{threshold: threshold, err: err}
	})
	for _, threshold := range thresholds {
		pool.AddJob(threshold)
	}
	pool.Close()
	pool.Wait()

	warmed := 0
	for res := range pool.CollectResults() {
		switch {
		case res.err == nil:
			warmed++
		case errors.Is(res.err, routegraph.ErrEmptyFilter):
			re.log.Debug("prewarm skipped empty threshold", zap.Float64("threshold", res.threshold))
		default:
			return fmt.Errorf("prewarm threshold %v: %w", res.threshold, res.err)
		}
	}

	re.log.Info("threshold graphs prewarmed",
		zap.Int("requested", len(thresholds)),
		zap.Int("warmed", warmed))
	return nil
}
