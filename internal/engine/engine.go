package engine

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"OpportunityScout/internal/collector"
	"OpportunityScout/internal/metrics"
	"OpportunityScout/internal/model"
	"OpportunityScout/internal/recorder"
	"OpportunityScout/internal/scanner"
	"OpportunityScout/internal/store"
)

// GlobalChat addresses the shared (unscoped) scan: cache updates and
// scheduled passes use it instead of a subscriber chat ID.
const GlobalChat int64 = 0

var (
	// ErrInvalidSymbol means the data provider cannot resolve the symbol.
	ErrInvalidSymbol = errors.New("invalid symbol")
	// ErrAlreadyWatched means the symbol is already on the watchlist.
	ErrAlreadyWatched = errors.New("symbol already on watchlist")
	// ErrNotWatched means the symbol is not on the watchlist.
	ErrNotWatched = errors.New("symbol not on watchlist")
	// ErrUnknownPreference means the preference key is not recognized.
	ErrUnknownPreference = errors.New("unknown preference key")
)

// Engine is the surface the command layer and the scheduler call into. It
// composes the scanner, the subscriber store, and the recorder.
type Engine struct {
	Scanner  *scanner.Scanner
	Store    *store.Store
	Recorder recorder.Recorder
	Metrics  *metrics.Metrics
	Fetcher  collector.Fetcher
}

// New wires up an Engine.
func New(sc *scanner.Scanner, st *store.Store, rec recorder.Recorder, m *metrics.Metrics, f collector.Fetcher) *Engine {
	return &Engine{Scanner: sc, Store: st, Recorder: rec, Metrics: m, Fetcher: f}
}

// RunScan runs a scan pass. For GlobalChat the default universe is scanned
// and the shared cache replaced; for a subscriber the universe is their
// watchlist plus defaults and the shared cache is untouched.
func (e *Engine) RunScan(chatID int64, trigger string) ([]model.Opportunity, error) {
	var watchlist []string
	if chatID != GlobalChat {
		watchlist = e.Store.Watchlist(chatID)
	}

	start := time.Now()
	opps, err := e.Scanner.Scan(watchlist)
	if err != nil {
		return nil, fmt.Errorf("scan (%s): %w", trigger, err)
	}
	if chatID == GlobalChat {
		e.Store.SetCache(opps)
	}

	if err := e.Recorder.RecordScan(&recorder.ScanRecord{
		Trigger:        trigger,
		SymbolsScanned: len(e.Scanner.BuildUniverse(watchlist)),
		Opportunities:  opps,
		Duration:       time.Since(start),
	}); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}
	return opps, nil
}

// Cached returns the most recent shared opportunity list. Per-user scans are
// transient and not cached, so every chat sees the same snapshot.
func (e *Engine) Cached(_ int64) []model.Opportunity {
	return e.Store.Cache()
}

// Subscribe adds the chat to the subscriber set.
func (e *Engine) Subscribe(chatID int64) bool {
	added := e.Store.Subscribe(chatID)
	if added && e.Metrics != nil {
		e.Metrics.Subscribers.Set(float64(e.Store.SubscriberCount()))
	}
	return added
}

// AddWatch validates the symbol against the data provider and appends it to
// the chat's watchlist.
func (e *Engine) AddWatch(chatID int64, symbol string) (*model.Quote, error) {
	symbol = normalizeSymbol(symbol)
	quote, err := e.Fetcher.FetchQuote(symbol)
	if err != nil {
		if errors.Is(err, collector.ErrSymbolNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSymbol, symbol)
		}
		return nil, fmt.Errorf("validate %s: %w", symbol, err)
	}
	if !e.Store.AddWatch(chatID, symbol) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyWatched, symbol)
	}
	return quote, nil
}

// RemoveWatch removes the symbol from the chat's watchlist.
func (e *Engine) RemoveWatch(chatID int64, symbol string) error {
	symbol = normalizeSymbol(symbol)
	if !e.Store.RemoveWatch(chatID, symbol) {
		return fmt.Errorf("%w: %s", ErrNotWatched, symbol)
	}
	return nil
}

// Watchlist returns the chat's watchlist.
func (e *Engine) Watchlist(chatID int64) []string {
	return e.Store.Watchlist(chatID)
}

// Preferences returns the chat's preferences, created with defaults on first
// access.
func (e *Engine) Preferences(chatID int64) model.Preferences {
	return e.Store.Preferences(chatID)
}

// SetPreference updates one preference field by key. Valid keys: alerts
// (on/off), min_confidence (0-100), min_risk_reward (>= 0).
func (e *Engine) SetPreference(chatID int64, key, value string) (model.Preferences, error) {
	prefs := e.Store.Preferences(chatID)
	switch strings.ToLower(key) {
	case "alerts":
		switch strings.ToLower(value) {
		case "on", "true", "yes", "1":
			prefs.AlertsEnabled = true
		case "off", "false", "no", "0":
			prefs.AlertsEnabled = false
		default:
			return prefs, fmt.Errorf("alerts must be on or off, got %q", value)
		}
	case "min_confidence":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > 100 {
			return prefs, fmt.Errorf("min_confidence must be an integer between 0 and 100, got %q", value)
		}
		prefs.MinConfidence = n
	case "min_risk_reward":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return prefs, fmt.Errorf("min_risk_reward must be a non-negative number, got %q", value)
		}
		prefs.MinRiskReward = f
	default:
		return prefs, fmt.Errorf("%w: %s", ErrUnknownPreference, key)
	}
	e.Store.SetPreferences(chatID, prefs)
	return prefs, nil
}

// Quote fetches a live quote for one symbol.
func (e *Engine) Quote(symbol string) (*model.Quote, error) {
	symbol = normalizeSymbol(symbol)
	quote, err := e.Fetcher.FetchQuote(symbol)
	if err != nil {
		if errors.Is(err, collector.ErrSymbolNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSymbol, symbol)
		}
		return nil, err
	}
	return quote, nil
}

// Performance returns recent recorded recommendations, newest first.
func (e *Engine) Performance(limit int) ([]recorder.OpportunityRecord, error) {
	return e.Recorder.RecentOpportunities(limit)
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
