package engine

import (
	"errors"
	"testing"
	"time"

	"OpportunityScout/internal/collector"
	"OpportunityScout/internal/model"
	"OpportunityScout/internal/recorder"
	"OpportunityScout/internal/scanner"
	"OpportunityScout/internal/store"
)

// signalBars yields a series with an SMA20/SMA50 cross on its last bar so a
// scan over it produces a BUY opportunity.
func signalBars() []model.OHLCV {
	closes := make([]float64, 60)
	for i := 0; i < 10; i++ {
		closes[i] = 100
	}
	for i := 10; i < 59; i++ {
		if i%2 == 0 {
			closes[i] = 90.2
		} else {
			closes[i] = 89.8
		}
	}
	closes[59] = 91

	base := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time: base.AddDate(0, 0, i), Open: c, High: c + 0.5, Low: c - 0.5,
			Close: c, Volume: 1000000,
		}
	}
	bars[59].Volume = 2500000
	return bars
}

func newTestEngine(mock *collector.MockFetcher, universe []string) *Engine {
	sc := scanner.New(mock, universe, 90)
	return New(sc, store.New(), recorder.NewNoopRecorder(), nil, mock)
}

func TestAddWatch_ValidSymbol(t *testing.T) {
	mock := &collector.MockFetcher{
		FailUnknown: true,
		Quotes: map[string]*model.Quote{
			"AAPL": {Symbol: "AAPL", Name: "Apple Inc.", CurrentPrice: 185.5, PreviousClose: 183.2},
		},
	}
	e := newTestEngine(mock, []string{"SPY"})

	quote, err := e.AddWatch(7, "aapl ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Name != "Apple Inc." {
		t.Errorf("expected validated quote, got %+v", quote)
	}
	wl := e.Watchlist(7)
	if len(wl) != 1 || wl[0] != "AAPL" {
		t.Errorf("expected normalized AAPL on watchlist, got %v", wl)
	}
}

func TestAddWatch_InvalidSymbol(t *testing.T) {
	mock := &collector.MockFetcher{FailUnknown: true}
	e := newTestEngine(mock, []string{"SPY"})

	_, err := e.AddWatch(7, "NOTREAL")
	if !errors.Is(err, ErrInvalidSymbol) {
		t.Fatalf("expected ErrInvalidSymbol, got %v", err)
	}
	if wl := e.Watchlist(7); len(wl) != 0 {
		t.Errorf("rejected symbol must not reach the watchlist, got %v", wl)
	}
}

func TestAddWatch_Duplicate(t *testing.T) {
	mock := &collector.MockFetcher{
		Quotes: map[string]*model.Quote{"AAPL": {Symbol: "AAPL", CurrentPrice: 185.5}},
	}
	e := newTestEngine(mock, []string{"SPY"})

	if _, err := e.AddWatch(7, "AAPL"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := e.AddWatch(7, "AAPL")
	if !errors.Is(err, ErrAlreadyWatched) {
		t.Fatalf("expected ErrAlreadyWatched, got %v", err)
	}
}

func TestRemoveWatch_Absent(t *testing.T) {
	e := newTestEngine(&collector.MockFetcher{}, []string{"SPY"})
	if err := e.RemoveWatch(7, "AAPL"); !errors.Is(err, ErrNotWatched) {
		t.Fatalf("expected ErrNotWatched, got %v", err)
	}
}

func TestSubscribe_Idempotent(t *testing.T) {
	e := newTestEngine(&collector.MockFetcher{}, []string{"SPY"})
	if !e.Subscribe(42) {
		t.Error("first subscribe should report new")
	}
	if e.Subscribe(42) {
		t.Error("repeat subscribe should report existing")
	}
}

func TestSetPreference_Parsing(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    bool
		check      func(p model.Preferences) bool
	}{
		{"alerts", "off", false, func(p model.Preferences) bool { return !p.AlertsEnabled }},
		{"alerts", "on", false, func(p model.Preferences) bool { return p.AlertsEnabled }},
		{"ALERTS", "ON", false, func(p model.Preferences) bool { return p.AlertsEnabled }},
		{"alerts", "maybe", true, nil},
		{"min_confidence", "75", false, func(p model.Preferences) bool { return p.MinConfidence == 75 }},
		{"min_confidence", "150", true, nil},
		{"min_confidence", "-1", true, nil},
		{"min_confidence", "abc", true, nil},
		{"min_risk_reward", "2.5", false, func(p model.Preferences) bool { return p.MinRiskReward == 2.5 }},
		{"min_risk_reward", "-1", true, nil},
		{"bogus_key", "1", true, nil},
	}
	for _, tt := range tests {
		e := newTestEngine(&collector.MockFetcher{}, []string{"SPY"})
		p, err := e.SetPreference(7, tt.key, tt.value)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%s=%s: expected error", tt.key, tt.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s=%s: unexpected error: %v", tt.key, tt.value, err)
			continue
		}
		if !tt.check(p) {
			t.Errorf("%s=%s: preference not applied, got %+v", tt.key, tt.value, p)
		}
	}
}

func TestSetPreference_UnknownKeySentinel(t *testing.T) {
	e := newTestEngine(&collector.MockFetcher{}, []string{"SPY"})
	_, err := e.SetPreference(7, "frequency", "daily")
	if !errors.Is(err, ErrUnknownPreference) {
		t.Fatalf("expected ErrUnknownPreference, got %v", err)
	}
}

func TestSetPreference_InvalidValueLeavesStoreUntouched(t *testing.T) {
	e := newTestEngine(&collector.MockFetcher{}, []string{"SPY"})
	if _, err := e.SetPreference(7, "min_confidence", "200"); err == nil {
		t.Fatal("expected error")
	}
	if p := e.Preferences(7); p.MinConfidence != 60 {
		t.Errorf("failed update must not change stored preferences, got %+v", p)
	}
}

func TestRunScan_GlobalUpdatesCache(t *testing.T) {
	mock := &collector.MockFetcher{
		Bars: map[string][]model.OHLCV{"ACME": signalBars()},
		Quotes: map[string]*model.Quote{
			"ACME": {Symbol: "ACME", Name: "Acme Corp", CurrentPrice: 91},
		},
	}
	e := newTestEngine(mock, []string{"ACME"})

	opps, err := e.RunScan(GlobalChat, "MANUAL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opps) != 1 {
		t.Fatalf("expected 1 opportunity, got %d", len(opps))
	}
	cached := e.Cached(999) // every chat sees the shared snapshot
	if len(cached) != 1 || cached[0].Symbol != "ACME" {
		t.Errorf("expected the global cache updated, got %v", cached)
	}
}

func TestRunScan_UserScanLeavesCacheAlone(t *testing.T) {
	mock := &collector.MockFetcher{
		Bars: map[string][]model.OHLCV{"ACME": signalBars()},
		Quotes: map[string]*model.Quote{
			"ACME": {Symbol: "ACME", Name: "Acme Corp", CurrentPrice: 91},
		},
	}
	e := newTestEngine(mock, []string{"ACME"})

	if _, err := e.RunScan(GlobalChat, "MANUAL"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := len(e.Cached(0))

	if _, err := e.RunScan(7, "MANUAL"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after := len(e.Cached(0)); after != before {
		t.Errorf("per-user scan must not touch the shared cache: %d -> %d", before, after)
	}
}

func TestQuote_InvalidSymbol(t *testing.T) {
	e := newTestEngine(&collector.MockFetcher{FailUnknown: true}, []string{"SPY"})
	if _, err := e.Quote("GHOST"); !errors.Is(err, ErrInvalidSymbol) {
		t.Fatalf("expected ErrInvalidSymbol, got %v", err)
	}
}
