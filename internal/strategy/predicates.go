package strategy

import "OpportunityScout/internal/model"

// trigger is one primary predicate's outcome.
type trigger struct {
	fired     bool
	direction model.Direction
	points    int
	reason    string
}

// crossedAbove reports whether a crossed b between the previous and current
// bar. Strict inequalities on both sides: equality never triggers a cross.
// NaN operands fail every comparison, so unpopulated windows never fire.
func crossedAbove(prevA, prevB, currA, currB float64) bool {
	return prevA < prevB && currA > currB
}

// goldenCross: SMA20 crossing above SMA50.
func goldenCross(curr, prev *model.Snapshot) trigger {
	return trigger{
		fired:     crossedAbove(prev.SMA20, prev.SMA50, curr.SMA20, curr.SMA50),
		direction: model.Buy,
		points:    30,
		reason:    "Golden cross: SMA20 crossed above SMA50",
	}
}

// rsiRebound: RSI crossing back above 30 from oversold territory.
func rsiRebound(curr, prev *model.Snapshot) trigger {
	return trigger{
		fired:     crossedAbove(prev.RSI14, 30, curr.RSI14, 30),
		direction: model.Buy,
		points:    25,
		reason:    "RSI rebounded above 30 from oversold",
	}
}

// macdBullish: MACD crossing above its signal line.
func macdBullish(curr, prev *model.Snapshot) trigger {
	return trigger{
		fired:     crossedAbove(prev.MACD, prev.MACDSignal, curr.MACD, curr.MACDSignal),
		direction: model.Buy,
		points:    25,
		reason:    "MACD crossed above signal line",
	}
}

// bollingerBounce: close recovering above the lower band after having
// touched or closed below it.
func bollingerBounce(curr, prev *model.Snapshot) trigger {
	return trigger{
		fired:     prev.Close <= prev.BollLower && curr.Close > curr.BollLower,
		direction: model.Buy,
		points:    20,
		reason:    "Price bounced off lower Bollinger band",
	}
}

// deathCross: SMA50 crossing below SMA200.
func deathCross(curr, prev *model.Snapshot) trigger {
	return trigger{
		fired:     crossedAbove(prev.SMA200, prev.SMA50, curr.SMA200, curr.SMA50),
		direction: model.Sell,
		points:    30,
		reason:    "Death cross: SMA50 crossed below SMA200",
	}
}

// rsiOverbought: RSI above 70.
func rsiOverbought(curr, _ *model.Snapshot) trigger {
	return trigger{
		fired:     curr.RSI14 > 70,
		direction: model.Sell,
		points:    25,
		reason:    "RSI overbought above 70",
	}
}

// macdBearish: MACD crossing below its signal line.
func macdBearish(curr, prev *model.Snapshot) trigger {
	return trigger{
		fired:     crossedAbove(prev.MACDSignal, prev.MACD, curr.MACDSignal, curr.MACD),
		direction: model.Sell,
		points:    25,
		reason:    "MACD crossed below signal line",
	}
}

// bollingerBreakout: close above the upper band with elevated RSI.
func bollingerBreakout(curr, _ *model.Snapshot) trigger {
	return trigger{
		fired:     curr.Close > curr.BollUpper && curr.RSI14 > 65,
		direction: model.Sell,
		points:    20,
		reason:    "Price broke above upper Bollinger band with elevated RSI",
	}
}
