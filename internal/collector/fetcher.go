package collector

import (
	"errors"

	"OpportunityScout/internal/model"
)

// ErrSymbolNotFound means the provider cannot resolve the symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

// ErrUnavailable means the provider could not be reached or returned an
// unusable response. Callers recover per symbol and continue.
var ErrUnavailable = errors.New("data provider unavailable")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.OHLCV, error)
	FetchQuote(symbol string) (*model.Quote, error)
	Name() string
}
