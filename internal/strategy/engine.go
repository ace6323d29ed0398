package strategy

import "OpportunityScout/internal/model"

// VolumeSpikeRatio is the multiple of the 20-bar average volume that counts
// as a volume confirmation.
const VolumeSpikeRatio = 1.5

// Evaluate fuses the eight primary predicates and the direction-conditional
// confirmations into a single Signal for one symbol.
//
// Direction assignment: the first triggering predicate sets the direction.
// A later predicate of the same direction only adds confidence; a predicate
// of the opposite direction overwrites the recorded direction (last opposite
// trigger wins) while confidence keeps accumulating from all triggers. This
// asymmetry is intentional upstream behavior and is preserved as-is.
func Evaluate(curr, prev *model.Snapshot) *model.Signal {
	sig := &model.Signal{Direction: model.None}

	triggers := []trigger{
		goldenCross(curr, prev),
		rsiRebound(curr, prev),
		macdBullish(curr, prev),
		bollingerBounce(curr, prev),
		deathCross(curr, prev),
		rsiOverbought(curr, prev),
		macdBearish(curr, prev),
		bollingerBreakout(curr, prev),
	}

	for _, t := range triggers {
		if !t.fired {
			continue
		}
		sig.Confidence += t.points
		sig.Rationale = append(sig.Rationale, t.reason)
		if sig.Direction == model.None {
			sig.Direction = t.direction
		} else if t.direction != sig.Direction {
			sig.Direction = t.direction
		}
	}

	if sig.Direction == model.None {
		return sig
	}
	applyConfirmations(sig, curr)
	return sig
}

// applyConfirmations adds confidence for direction-consistent secondary
// conditions on the current bar: price vs SMA20 (+10), SMA20 vs SMA50 trend
// alignment (+10), and a volume spike over the 20-bar average (+15).
func applyConfirmations(sig *model.Signal, curr *model.Snapshot) {
	switch sig.Direction {
	case model.Buy:
		if curr.Close > curr.SMA20 {
			sig.Confidence += 10
			sig.Rationale = append(sig.Rationale, "Price trading above SMA20")
		}
		if curr.SMA20 > curr.SMA50 {
			sig.Confidence += 10
			sig.Rationale = append(sig.Rationale, "Uptrend: SMA20 above SMA50")
		}
	case model.Sell:
		if curr.Close < curr.SMA20 {
			sig.Confidence += 10
			sig.Rationale = append(sig.Rationale, "Price trading below SMA20")
		}
		if curr.SMA20 < curr.SMA50 {
			sig.Confidence += 10
			sig.Rationale = append(sig.Rationale, "Downtrend: SMA20 below SMA50")
		}
	}
	if curr.Volume >= VolumeSpikeRatio*curr.VolumeAvg20 {
		sig.Confidence += 15
		sig.Rationale = append(sig.Rationale, "Volume above 1.5x its 20-bar average")
	}
}
