package model

import "time"

// Opportunity is a concrete trade recommendation built from an accepted
// signal. It is immutable once built; the next scan pass supersedes it.
type Opportunity struct {
	Symbol          string
	Name            string
	Direction       Direction
	Price           float64
	TargetPrice     float64
	StopLoss        float64
	RiskReward      float64
	Confidence      int
	Units           float64
	PotentialProfit float64
	MaxLoss         float64
	Rationale       string
	Indicators      Snapshot
	CreatedAt       time.Time
}
