package recorder

import (
	"time"

	"OpportunityScout/internal/model"
)

// ScanRecord holds the outcome of one scan pass.
type ScanRecord struct {
	Trigger        string // "MARKET_OPEN", "MARKET_CLOSE", "REFRESH", "MANUAL"
	SymbolsScanned int
	Opportunities  []model.Opportunity
	Duration       time.Duration
}

// BroadcastEvent records one alert delivered to a subscriber.
type BroadcastEvent struct {
	ChatID     int64
	Symbol     string
	Direction  model.Direction
	Confidence int
}

// OpportunityRecord is a historical recommendation row, used by the
// performance view.
type OpportunityRecord struct {
	Time        time.Time
	Symbol      string
	Direction   string
	Price       float64
	TargetPrice float64
	StopLoss    float64
	RiskReward  float64
	Confidence  int
}

// Recorder persists scan history for later review.
type Recorder interface {
	RecordScan(rec *ScanRecord) error
	RecordBroadcast(evt *BroadcastEvent) error
	RecentOpportunities(limit int) ([]OpportunityRecord, error)
	Close() error
}
