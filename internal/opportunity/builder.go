package opportunity

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"OpportunityScout/internal/model"

	"github.com/shopspring/decimal"
)

const (
	// Budget is the fixed per-trade budget in USD that position sizing is
	// computed against.
	Budget = 100.0
	// MinConfidence is the acceptance threshold for a fused signal.
	MinConfidence = 60
	// MinRiskReward is the floor below which a candidate is rejected.
	MinRiskReward = 1.5
	// TargetATRMultiple and StopATRMultiple scale the ATR fraction into the
	// target and stop distances from the current price.
	TargetATRMultiple = 2.0
	StopATRMultiple   = 1.0
)

// ErrNoSignal marks a candidate rejected by the acceptance thresholds. It is
// a normal filtering outcome, not a fault.
var ErrNoSignal = errors.New("no actionable signal")

// Build converts an accepted signal into a concrete Opportunity. Every
// returned Opportunity satisfies confidence >= 60 and risk/reward >= 1.5 by
// construction.
func Build(symbol, name string, sig *model.Signal, price, atrFrac float64, ind model.Snapshot) (*model.Opportunity, error) {
	if sig == nil || sig.Direction == model.None {
		return nil, fmt.Errorf("%w: %s: no predicate fired", ErrNoSignal, symbol)
	}
	if sig.Confidence < MinConfidence {
		return nil, fmt.Errorf("%w: %s: confidence %d below %d", ErrNoSignal, symbol, sig.Confidence, MinConfidence)
	}
	if price <= 0 {
		return nil, fmt.Errorf("build %s: non-positive price %.4f", symbol, price)
	}

	var target, stop float64
	switch sig.Direction {
	case model.Buy:
		target = price * (1 + TargetATRMultiple*atrFrac)
		stop = price * (1 - StopATRMultiple*atrFrac)
	case model.Sell:
		target = price * (1 - TargetATRMultiple*atrFrac)
		stop = price * (1 + StopATRMultiple*atrFrac)
	}

	reward := math.Abs(target - price)
	risk := math.Abs(price - stop)
	riskReward := 0.0
	if risk > 0 {
		riskReward = reward / risk
	}
	if riskReward < MinRiskReward {
		return nil, fmt.Errorf("%w: %s: risk/reward %.2f below %.1f", ErrNoSignal, symbol, riskReward, MinRiskReward)
	}

	// Money-side arithmetic in decimal so the cent rounding is exact.
	units := decimal.NewFromFloat(Budget).Div(decimal.NewFromFloat(price)).Round(2)
	profit := units.Mul(decimal.NewFromFloat(reward)).Round(2)
	loss := units.Mul(decimal.NewFromFloat(risk)).Round(2)

	return &model.Opportunity{
		Symbol:          symbol,
		Name:            name,
		Direction:       sig.Direction,
		Price:           price,
		TargetPrice:     target,
		StopLoss:        stop,
		RiskReward:      riskReward,
		Confidence:      sig.Confidence,
		Units:           units.InexactFloat64(),
		PotentialProfit: profit.InexactFloat64(),
		MaxLoss:         loss.InexactFloat64(),
		Rationale:       strings.Join(sig.Rationale, "; "),
		Indicators:      ind,
		CreatedAt:       time.Now(),
	}, nil
}
