package collector

import (
	"context"
	"fmt"
	"time"

	"OpportunityScout/internal/model"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
)

// PolygonFetcher implements Fetcher using the Polygon.io REST API.
type PolygonFetcher struct {
	client  *polygon.Client
	timeout time.Duration
}

// NewPolygonFetcher creates a Polygon-backed fetcher.
func NewPolygonFetcher(apiKey string) *PolygonFetcher {
	return &PolygonFetcher{
		client:  polygon.New(apiKey),
		timeout: 30 * time.Second,
	}
}

func (f *PolygonFetcher) Name() string { return "polygon" }

func (f *PolygonFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	now := time.Now()
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 1,
		Timespan:   models.Timespan("day"),
		From:       models.Millis(now.AddDate(0, 0, -days)),
		To:         models.Millis(now),
	}.
		WithAdjusted(true).
		WithOrder(models.Order("asc")).
		WithLimit(50000)

	it := f.client.ListAggs(ctx, params)

	var bars []model.OHLCV
	for it.Next() {
		agg := it.Item()
		bars = append(bars, model.OHLCV{
			Time:   time.Time(agg.Timestamp),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("%w: polygon aggs %s: %v", ErrUnavailable, symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s: polygon returned no aggregates", ErrSymbolNotFound, symbol)
	}
	return bars, nil
}

func (f *PolygonFetcher) FetchQuote(symbol string) (*model.Quote, error) {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	// Last two daily closes stand in for current price and previous close;
	// real-time trades need a paid tier.
	bars, err := f.FetchDailyBars(symbol, 10)
	if err != nil {
		return nil, err
	}
	current := bars[len(bars)-1].Close
	prevClose := current
	if len(bars) > 1 {
		prevClose = bars[len(bars)-2].Close
	}

	name := symbol
	details, err := f.client.GetTickerDetails(ctx, &models.GetTickerDetailsParams{Ticker: symbol})
	if err == nil && details.Results.Name != "" {
		name = details.Results.Name
	}

	return &model.Quote{
		Symbol:        symbol,
		Name:          name,
		CurrentPrice:  current,
		PreviousClose: prevClose,
	}, nil
}
