package calculator

import (
	"errors"
	"fmt"

	"OpportunityScout/internal/model"
)

// MinBars is the minimum series length accepted for analysis. Below it no
// meaningful window is populated. Full coverage (SMA200) needs 200 bars;
// shorter series degrade gracefully through the NaN sentinel.
const MinBars = 30

// ErrInsufficientHistory is returned when a series is too short to analyze.
var ErrInsufficientHistory = errors.New("insufficient history")

// Analysis holds the indicator snapshots for the last two bars of a series
// plus the series-level volatility fraction. Only these are consumed
// downstream; earlier history exists to seed the windows.
type Analysis struct {
	Curr        model.Snapshot
	Prev        model.Snapshot
	ATRFraction float64
}

// Analyze derives all indicator series from the given bars and returns the
// last and previous bar snapshots. It is a pure function of its input:
// identical series yield bit-identical results.
func Analyze(bars []model.OHLCV) (*Analysis, error) {
	if len(bars) < MinBars {
		return nil, fmt.Errorf("%w: got %d bars, need %d", ErrInsufficientHistory, len(bars), MinBars)
	}

	closes := extractCloses(bars)
	volumes := extractVolumes(bars)

	sma20 := CalculateSMA(closes, 20)
	sma50 := CalculateSMA(closes, 50)
	sma200 := CalculateSMA(closes, 200)
	rsi14 := CalculateRSI(closes, 14)
	ema12 := CalculateEMA(closes, 12)
	ema26 := CalculateEMA(closes, 26)
	macd, macdSignal := CalculateMACD(closes)
	bollMid, bollUp, bollLow := CalculateBollinger(closes, 20, 2.0)
	volAvg20 := CalculateSMA(volumes, 20)

	snapshotAt := func(i int) model.Snapshot {
		return model.Snapshot{
			Close:       closes[i],
			Volume:      volumes[i],
			SMA20:       sma20[i],
			SMA50:       sma50[i],
			SMA200:      sma200[i],
			RSI14:       rsi14[i],
			EMA12:       ema12[i],
			EMA26:       ema26[i],
			MACD:        macd[i],
			MACDSignal:  macdSignal[i],
			BollMiddle:  bollMid[i],
			BollUpper:   bollUp[i],
			BollLower:   bollLow[i],
			VolumeAvg20: volAvg20[i],
		}
	}

	last := len(bars) - 1
	return &Analysis{
		Curr:        snapshotAt(last),
		Prev:        snapshotAt(last - 1),
		ATRFraction: CalculateATRFraction(bars, 14),
	}, nil
}
