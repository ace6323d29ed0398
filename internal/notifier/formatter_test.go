package notifier

import (
	"strings"
	"testing"
	"time"

	"OpportunityScout/internal/model"
	"OpportunityScout/internal/recorder"
)

func sampleOpportunity() *model.Opportunity {
	return &model.Opportunity{
		Symbol:          "AAPL",
		Name:            "Apple Inc.",
		Direction:       model.Buy,
		Price:           202.75,
		TargetPrice:     223.03,
		StopLoss:        192.61,
		RiskReward:      2.0,
		Confidence:      65,
		Units:           0.49,
		PotentialProfit: 9.94,
		MaxLoss:         4.97,
		Rationale:       "Golden cross: SMA20 crossed above SMA50; Volume above 1.5x its 20-bar average",
	}
}

func TestFormatOpportunityAlert(t *testing.T) {
	text := FormatOpportunityAlert(sampleOpportunity(), 0)
	for _, want := range []string{
		"OPPORTUNITY ALERT",
		"*Symbol:* AAPL",
		"*Signal:* BUY",
		"*Current Price:* $202.75",
		"*Target Price:* $223.03",
		"*Stop Loss:* $192.61",
		"*Risk/Reward:* 2.0",
		"*Confidence:* 65%",
		"Units to buy: 0.49",
		"Potential profit: $9.94",
		"Maximum loss: $4.97",
		"Golden cross",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("alert missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "more opportunities") {
		t.Error("no trailer expected when nothing else survived")
	}
}

func TestFormatOpportunityAlert_MoreTrailer(t *testing.T) {
	text := FormatOpportunityAlert(sampleOpportunity(), 3)
	if !strings.Contains(text, "3 more opportunities") {
		t.Errorf("expected trailer for further opportunities:\n%s", text)
	}
}

func TestFormatOpportunityList(t *testing.T) {
	opps := []model.Opportunity{
		{Symbol: "NVDA", Name: "NVIDIA", Direction: model.Buy, Price: 130, Confidence: 85, RiskReward: 2.0},
		{Symbol: "AAPL", Name: "Apple Inc.", Direction: model.Sell, Price: 202.75, Confidence: 65, RiskReward: 2.0},
	}
	text := FormatOpportunityList(opps)
	if !strings.Contains(text, "1. NVDA") || !strings.Contains(text, "2. AAPL") {
		t.Errorf("list should be numbered in rank order:\n%s", text)
	}
}

func TestFormatOpportunityList_Empty(t *testing.T) {
	text := FormatOpportunityList(nil)
	if !strings.Contains(text, "No opportunities found") {
		t.Errorf("unexpected empty-list reply: %q", text)
	}
}

func TestFormatQuote_ChangeComputation(t *testing.T) {
	text := FormatQuote(&model.Quote{
		Symbol: "SPY", Name: "SPDR S&P 500",
		CurrentPrice: 102, PreviousClose: 100,
	})
	if !strings.Contains(text, "Change: $2.00 (2.00%)") {
		t.Errorf("change line wrong:\n%s", text)
	}
}

func TestFormatQuote_ZeroPreviousClose(t *testing.T) {
	text := FormatQuote(&model.Quote{Symbol: "IPO", Name: "Fresh Listing", CurrentPrice: 10})
	if !strings.Contains(text, "(0.00%)") {
		t.Errorf("zero previous close must not divide by zero:\n%s", text)
	}
}

func TestFormatWatchSymbols(t *testing.T) {
	if text := FormatWatchSymbols(nil); !strings.Contains(text, "watchlist is empty") {
		t.Errorf("unexpected empty watchlist reply: %q", text)
	}
	text := FormatWatchSymbols([]string{"AAPL", "TSLA"})
	if !strings.Contains(text, "AAPL, TSLA") {
		t.Errorf("symbols missing from reply: %q", text)
	}
}

func TestFormatSettings_EscapesMarkdown(t *testing.T) {
	text := FormatSettings(model.DefaultPreferences())
	// Underscored keys must be escaped or Telegram renders them as italics.
	if !strings.Contains(text, "min\\_confidence: 60") {
		t.Errorf("min_confidence not escaped:\n%s", text)
	}
	if !strings.Contains(text, "min\\_risk\\_reward: 1.5") {
		t.Errorf("min_risk_reward not escaped:\n%s", text)
	}
}

func TestFormatPerformance(t *testing.T) {
	if text := FormatPerformance(nil); !strings.Contains(text, "No recommendations recorded yet") {
		t.Errorf("unexpected empty history reply: %q", text)
	}
	records := []recorder.OpportunityRecord{{
		Time: time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC),
		Symbol: "NVDA", Direction: "BUY", Price: 130,
		TargetPrice: 143, StopLoss: 123.5, RiskReward: 2.0, Confidence: 85,
	}}
	text := FormatPerformance(records)
	if !strings.Contains(text, "06-15  NVDA BUY at $130.00") {
		t.Errorf("history row malformed:\n%s", text)
	}
}
