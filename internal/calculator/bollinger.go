package calculator

import "math"

// CalculateBollinger computes Bollinger Bands: middle = SMA(window), upper and
// lower = middle +/- k population standard deviations of close over the same
// trailing window.
func CalculateBollinger(closes []float64, window int, k float64) (middle, upper, lower []float64) {
	middle = CalculateSMA(closes, window)
	upper = nanSeries(len(closes))
	lower = nanSeries(len(closes))
	if window <= 0 || len(closes) < window {
		return middle, upper, lower
	}
	for i := window - 1; i < len(closes); i++ {
		mean := middle[i]
		var variance float64
		for j := i - window + 1; j <= i; j++ {
			d := closes[j] - mean
			variance += d * d
		}
		sd := math.Sqrt(variance / float64(window))
		upper[i] = mean + k*sd
		lower[i] = mean - k*sd
	}
	return middle, upper, lower
}
