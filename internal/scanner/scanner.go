package scanner

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"OpportunityScout/internal/calculator"
	"OpportunityScout/internal/collector"
	"OpportunityScout/internal/metrics"
	"OpportunityScout/internal/model"
	"OpportunityScout/internal/opportunity"
	"OpportunityScout/internal/strategy"
)

// MaxResults is the contractual cap on a scan pass's output.
const MaxResults = 10

// DefaultUniverse is the curated symbol list scanned when a user has no
// watchlist and by every scheduled broadcast pass.
var DefaultUniverse = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA",
	"JPM", "V", "JNJ", "WMT", "XOM", "SPY", "QQQ", "GLD", "VNQ",
}

// Scanner drives the per-symbol pipeline: fetch, analyze, fuse, build.
type Scanner struct {
	Fetcher      collector.Fetcher
	Universe     []string
	LookbackDays int
	Metrics      *metrics.Metrics
}

// New creates a Scanner. A nil or empty universe falls back to
// DefaultUniverse; lookbackDays below the 90-day minimum is raised to it.
func New(fetcher collector.Fetcher, universe []string, lookbackDays int) *Scanner {
	if len(universe) == 0 {
		universe = DefaultUniverse
	}
	if lookbackDays < 90 {
		lookbackDays = 90
	}
	return &Scanner{
		Fetcher:      fetcher,
		Universe:     universe,
		LookbackDays: lookbackDays,
	}
}

// BuildUniverse merges a caller-supplied watchlist with the default universe:
// watchlist symbols first, then defaults not already present.
func (s *Scanner) BuildUniverse(watchlist []string) []string {
	seen := make(map[string]bool, len(watchlist)+len(s.Universe))
	out := make([]string, 0, len(watchlist)+len(s.Universe))
	for _, sym := range watchlist {
		if !seen[sym] {
			seen[sym] = true
			out = append(out, sym)
		}
	}
	for _, sym := range s.Universe {
		if !seen[sym] {
			seen[sym] = true
			out = append(out, sym)
		}
	}
	return out
}

// Rank orders opportunities descending by confidence, then risk/reward, and
// truncates to MaxResults. The sort is stable so equally ranked symbols keep
// their universe order.
func Rank(opps []model.Opportunity) []model.Opportunity {
	sort.SliceStable(opps, func(i, j int) bool {
		if opps[i].Confidence != opps[j].Confidence {
			return opps[i].Confidence > opps[j].Confidence
		}
		return opps[i].RiskReward > opps[j].RiskReward
	})
	if len(opps) > MaxResults {
		opps = opps[:MaxResults]
	}
	return opps
}

// Scan evaluates every symbol in the universe independently and returns the
// accepted opportunities ranked descending by (confidence, risk/reward),
// truncated to MaxResults. A single symbol's failure never aborts the pass;
// only an empty universe does.
func (s *Scanner) Scan(watchlist []string) ([]model.Opportunity, error) {
	universe := s.BuildUniverse(watchlist)
	if len(universe) == 0 {
		return nil, errors.New("scan: empty symbol universe")
	}

	start := time.Now()
	var opps []model.Opportunity
	for _, sym := range universe {
		opp, err := s.scanSymbol(sym)
		if err != nil {
			if errors.Is(err, opportunity.ErrNoSignal) {
				continue // normal filtering outcome
			}
			log.Printf("[WARN] scan %s: %v", sym, err)
			if s.Metrics != nil {
				s.Metrics.SymbolsFailed.Inc()
			}
			continue
		}
		opps = append(opps, *opp)
	}

	opps = Rank(opps)

	if s.Metrics != nil {
		s.Metrics.ScansTotal.Inc()
		s.Metrics.ScanDuration.Observe(time.Since(start).Seconds())
		s.Metrics.OpportunitiesFound.Set(float64(len(opps)))
	}
	log.Printf("[INFO] scan finished: %d symbols, %d opportunities, %s",
		len(universe), len(opps), time.Since(start).Round(time.Millisecond))
	return opps, nil
}

func (s *Scanner) scanSymbol(symbol string) (*model.Opportunity, error) {
	bars, err := s.Fetcher.FetchDailyBars(symbol, s.LookbackDays)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	analysis, err := calculator.Analyze(bars)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	sig := strategy.Evaluate(&analysis.Curr, &analysis.Prev)
	if sig.Direction == model.None {
		return nil, fmt.Errorf("%w: %s: no predicate fired", opportunity.ErrNoSignal, symbol)
	}

	quote, err := s.Fetcher.FetchQuote(symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}

	return opportunity.Build(symbol, quote.Name, sig, quote.CurrentPrice, analysis.ATRFraction, analysis.Curr)
}
