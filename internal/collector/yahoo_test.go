package collector

import (
	"encoding/json"
	"errors"
	"testing"
)

const chartFixture = `{
	"chart": {
		"result": [{
			"meta": {
				"symbol": "AAPL",
				"shortName": "Apple",
				"longName": "Apple Inc.",
				"regularMarketPrice": 202.75,
				"previousClose": 200.30
			},
			"timestamp": [1749600000, 1749686400, 1749772800],
			"indicators": {
				"quote": [{
					"open":   [201.0, null, 202.1],
					"high":   [203.0, null, 203.5],
					"low":    [200.5, null, 201.8],
					"close":  [202.0, null, 202.75],
					"volume": [51000000, null, 48000000]
				}]
			}
		}],
		"error": null
	}
}`

func TestChartBars_SkipsNullBars(t *testing.T) {
	var chart yahooChart
	if err := json.Unmarshal([]byte(chartFixture), &chart); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	bars := chartBars(&chart)
	if len(bars) != 2 {
		t.Fatalf("expected the null holiday bar skipped, got %d bars", len(bars))
	}
	if bars[0].Close != 202.0 || bars[1].Close != 202.75 {
		t.Errorf("unexpected closes: %v, %v", bars[0].Close, bars[1].Close)
	}
	if !bars[0].Time.Before(bars[1].Time) {
		t.Error("bars must be in ascending time order")
	}
	if bars[1].Volume != 48000000 {
		t.Errorf("volume lost: %v", bars[1].Volume)
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		in   interface{}
		want float64
	}{
		{nil, 0},
		{202.75, 202.75},
		{3, 3},
		{"bogus", 0},
	}
	for _, tt := range tests {
		if got := toFloat(tt.in); got != tt.want {
			t.Errorf("toFloat(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestMockFetcher_ErrorsAndFallbacks(t *testing.T) {
	mock := &MockFetcher{
		Errors:      map[string]error{"BRKN": ErrUnavailable},
		FailUnknown: true,
	}

	if _, err := mock.FetchDailyBars("BRKN", 90); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected configured error, got %v", err)
	}
	if _, err := mock.FetchDailyBars("GHOST", 90); !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("expected ErrSymbolNotFound for unknown symbol, got %v", err)
	}
	if _, err := mock.FetchQuote("GHOST"); !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("expected ErrSymbolNotFound for unknown quote, got %v", err)
	}
}

func TestMockFetcher_GeneratedSeries(t *testing.T) {
	mock := &MockFetcher{Price: 250}
	bars, err := mock.FetchDailyBars("ANY", 120)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 120 {
		t.Fatalf("expected 120 generated bars, got %d", len(bars))
	}
	for i, b := range bars {
		if b.High < b.Close || b.Low > b.Close {
			t.Fatalf("bar %d: high/low does not bracket close: %+v", i, b)
		}
	}

	quote, err := mock.FetchQuote("ANY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.CurrentPrice != 250 {
		t.Errorf("expected base price quote, got %v", quote.CurrentPrice)
	}
}
