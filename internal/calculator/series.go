package calculator

import (
	"math"

	"OpportunityScout/internal/model"
)

// CalculateSMA computes the simple moving average series over the given
// window. Values before the window is fully populated are NaN.
func CalculateSMA(values []float64, window int) []float64 {
	out := nanSeries(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// CalculateEMA computes the exponential moving average series, seeded by the
// first value, with smoothing weight 2/(span+1).
func CalculateEMA(values []float64, span int) []float64 {
	out := nanSeries(len(values))
	if span <= 0 || len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	ema := values[0]
	out[0] = ema
	for i := 1; i < len(values); i++ {
		ema = alpha*values[i] + (1-alpha)*ema
		out[i] = ema
	}
	return out
}

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

func extractVolumes(bars []model.OHLCV) []float64 {
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		volumes[i] = b.Volume
	}
	return volumes
}
