package collector

import (
	"fmt"
	"time"

	"OpportunityScout/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Symbols absent from the maps fall back to generated flat bars unless
// FailUnknown is set.
type MockFetcher struct {
	Price       float64
	Bars        map[string][]model.OHLCV
	Quotes      map[string]*model.Quote
	Errors      map[string]error
	FailUnknown bool
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	if err, ok := m.Errors[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	if m.FailUnknown {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	return GenerateMockBars(m.basePrice(), days), nil
}

func (m *MockFetcher) FetchQuote(symbol string) (*model.Quote, error) {
	if err, ok := m.Errors[symbol]; ok {
		return nil, err
	}
	if q, ok := m.Quotes[symbol]; ok {
		return q, nil
	}
	if m.FailUnknown {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	price := m.basePrice()
	if bars, ok := m.Bars[symbol]; ok && len(bars) > 0 {
		price = bars[len(bars)-1].Close
	}
	return &model.Quote{Symbol: symbol, Name: symbol, CurrentPrice: price, PreviousClose: price}, nil
}

func (m *MockFetcher) basePrice() float64 {
	if m.Price > 0 {
		return m.Price
	}
	return 100
}

// GenerateMockBars produces a gently trending synthetic series.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
