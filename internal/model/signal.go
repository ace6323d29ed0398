package model

// Direction is the trade direction of a fused signal.
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
	None Direction = "NONE"
)

// Signal is the output of the fusion engine for one symbol.
// Confidence accumulates additively across all triggered strategies and has
// no fixed ceiling. Rationale preserves the triggering order.
type Signal struct {
	Direction  Direction
	Confidence int
	Rationale  []string
}
