package calculator

// CalculateMACD computes the MACD line (EMA12 - EMA26) and its signal line
// (EMA9 of the MACD series).
func CalculateMACD(closes []float64) (macd, signal []float64) {
	ema12 := CalculateEMA(closes, 12)
	ema26 := CalculateEMA(closes, 26)
	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = ema12[i] - ema26[i]
	}
	signal = CalculateEMA(macd, 9)
	return macd, signal
}
