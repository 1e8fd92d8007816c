package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrewarm(t *testing.T) {
	re := newTestEngine(t, WithGraphCache(8))

	// 0.5 filters everything out and must be skipped, not fail the batch
	require.NoError(t, re.Prewarm([]float64{0.5, 3, 5, 10}, 2))

	for _, threshold := range []float64{3, 5, 10} {
		_, ok := re.cache.Get(threshold)
		assert.True(t, ok, "threshold %v should be cached", threshold)
	}
	_, ok := re.cache.Get(0.5)
	assert.False(t, ok)
}

func TestPrewarmWithoutCache(t *testing.T) {
	re := newTestEngine(t)
	require.NoError(t, re.Prewarm([]float64{3, 5}, 2))
}
