package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func risingSeries(n int) []float64 {
	series := make([]float64, n)
	for i := range series {
		series[i] = float64(i)
	}
	return series
}

func TestPredictFuture(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	t.Run("returns one point per horizon step", func(t *testing.T) {
		points, err := engine.PredictFuture(risingSeries(30), 7)
		require.NoError(t, err)
		require.Len(t, points, 7)

		for i, p := range points {
			assert.Equal(t, i+1, p.Ordinal)
		}
	})

	t.Run("extends the regression line", func(t *testing.T) {
		// index series: slope 1, intercept 0, so step i predicts 30+i-1
		points, err := engine.PredictFuture(risingSeries(30), 7)
		require.NoError(t, err)

		for i, p := range points {
			assert.InDelta(t, float64(30+i), p.PredictedValue, 1e-10)
		}
	})

	t.Run("confidence is non-increasing and floored at 50", func(t *testing.T) {
		points, err := engine.PredictFuture(risingSeries(30), 30)
		require.NoError(t, err)

		prev := 100.0
		for _, p := range points {
			assert.LessOrEqual(t, p.Confidence, prev)
			assert.GreaterOrEqual(t, p.Confidence, 50.0)
			prev = p.Confidence
		}
		// 95 - 1.5*30 is below the floor
		assert.Equal(t, 50.0, points[29].Confidence)
		assert.Equal(t, 93.5, points[0].Confidence)
	})

	t.Run("bounds bracket the prediction inside the score domain", func(t *testing.T) {
		series := []float64{40, 43, 41, 45, 44, 48, 47, 50, 49, 52, 51, 55, 54, 57}

		points, err := engine.PredictFuture(series, 30)
		require.NoError(t, err)

		for _, p := range points {
			assert.LessOrEqual(t, p.LowerBound, p.PredictedValue)
			assert.GreaterOrEqual(t, p.UpperBound, p.PredictedValue)
			assert.GreaterOrEqual(t, p.LowerBound, 0.0)
			assert.LessOrEqual(t, p.UpperBound, 100.0)
		}
	})

	t.Run("interval widens with distance", func(t *testing.T) {
		series := []float64{50, 52, 48, 53, 47, 55, 45, 51, 49, 54, 46, 52, 48, 50}

		points, err := engine.PredictFuture(series, 10)
		require.NoError(t, err)

		prevWidth := -1.0
		for _, p := range points {
			width := p.UpperBound - p.LowerBound
			assert.GreaterOrEqual(t, width, prevWidth)
			prevWidth = width
		}
	})

	t.Run("non-positive horizon yields empty result", func(t *testing.T) {
		points, err := engine.PredictFuture(risingSeries(30), 0)
		require.NoError(t, err)
		assert.Empty(t, points)

		points, err = engine.PredictFuture(risingSeries(30), -5)
		require.NoError(t, err)
		assert.Empty(t, points)
	})

	t.Run("rejects short series", func(t *testing.T) {
		_, err := engine.PredictFuture([]float64{42}, 7)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("does not mutate the input series", func(t *testing.T) {
		series := []float64{10, 20, 15, 25, 20, 30}
		original := append([]float64(nil), series...)

		_, err := engine.PredictFuture(series, 7)
		require.NoError(t, err)
		assert.Equal(t, original, series)
	})

	t.Run("reproducible for identical input", func(t *testing.T) {
		series := []float64{33.1, 35.7, 34.2, 36.9, 38.4, 37.1, 40.5, 39.8}

		first, err := engine.PredictFuture(series, 14)
		require.NoError(t, err)
		second, err := engine.PredictFuture(series, 14)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
