package model

// Snapshot holds all computed technical indicators for a single bar.
// Indicators whose window is not yet populated are NaN.
type Snapshot struct {
	Close       float64
	Volume      float64
	SMA20       float64
	SMA50       float64
	SMA200      float64
	RSI14       float64
	EMA12       float64
	EMA26       float64
	MACD        float64
	MACDSignal  float64
	BollMiddle  float64
	BollUpper   float64
	BollLower   float64
	VolumeAvg20 float64
}
