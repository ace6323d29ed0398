package calculator

import "OpportunityScout/internal/model"

// CalculateATRFraction computes a volatility proxy: the mean of the trailing
// `window` high-low range over all bars where the window is populated,
// expressed as a fraction of the last close. Returns 0 when the series is too
// short or the last close is not positive.
func CalculateATRFraction(bars []model.OHLCV, window int) float64 {
	if window <= 0 || len(bars) < window {
		return 0
	}
	lastClose := bars[len(bars)-1].Close
	if lastClose <= 0 {
		return 0
	}
	var sum float64
	var count int
	for i := window - 1; i < len(bars); i++ {
		hi := bars[i-window+1].High
		lo := bars[i-window+1].Low
		for j := i - window + 2; j <= i; j++ {
			if bars[j].High > hi {
				hi = bars[j].High
			}
			if bars[j].Low < lo {
				lo = bars[j].Low
			}
		}
		sum += hi - lo
		count++
	}
	return sum / float64(count) / lastClose
}
