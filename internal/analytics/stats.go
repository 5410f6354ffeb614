package analytics

import (
	"fmt"
	"math"
)

// Regression is an ordinary least squares fit over a series, using the
// 0-based index of each observation as the independent variable.
type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At evaluates the regression line at index x.
func (r Regression) At(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// Mean returns the arithmetic mean of the series, or 0 for an empty series.
func Mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

// StdDev returns the population standard deviation (divide by N).
// A series with fewer than two points, or a constant series, yields 0.
func StdDev(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	mean := Mean(series)
	var variance float64
	for _, v := range series {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(series))
	return math.Sqrt(variance)
}

// LinearRegression fits a least-squares line to the series against its
// 0-based index. It returns ErrInsufficientData for fewer than two points
// rather than propagating a NaN fit.
func LinearRegression(series []float64) (Regression, error) {
	n := len(series)
	if n < 2 {
		return Regression{}, fmt.Errorf("linear regression needs at least 2 points, got %d: %w", n, ErrInsufficientData)
	}

	meanX := float64(n-1) / 2
	meanY := Mean(series)

	var ssXY, ssXX float64
	for i, v := range series {
		dx := float64(i) - meanX
		ssXY += dx * (v - meanY)
		ssXX += dx * dx
	}

	slope := ssXY / ssXX
	return Regression{
		Slope:     slope,
		Intercept: meanY - slope*meanX,
	}, nil
}

// round1 rounds to one decimal place, the precision all engine outputs
// are reported at.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
