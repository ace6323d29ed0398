package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Quote holds the latest quote information for one symbol.
type Quote struct {
	Symbol        string
	Name          string
	CurrentPrice  float64
	PreviousClose float64
}
