package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"OpportunityScout/internal/engine"
	"OpportunityScout/internal/model"
	"OpportunityScout/internal/notifier"
	"OpportunityScout/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the weekday broadcast crons and the periodic cache
// refresh, and dispatches Telegram commands to the engine.
type Scheduler struct {
	Cron            *cron.Cron
	Engine          *engine.Engine
	Notifier        *notifier.TelegramNotifier
	Ctx             context.Context
	RefreshDelay    time.Duration
	RefreshInterval time.Duration
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, eng *engine.Engine, tn *notifier.TelegramNotifier) *Scheduler {
	return &Scheduler{
		Cron:            cron.New(cron.WithSeconds()),
		Engine:          eng,
		Notifier:        tn,
		Ctx:             ctx,
		RefreshDelay:    2 * time.Hour,
		RefreshInterval: 4 * time.Hour,
	}
}

// RegisterAll registers the market-open and market-close broadcast tasks.
// Weekday gating lives in the cron expressions themselves.
func (s *Scheduler) RegisterAll(openCron, closeCron string) error {
	if _, err := s.Cron.AddFunc(openCron, func() { s.Broadcast("MARKET_OPEN") }); err != nil {
		return fmt.Errorf("register market-open task: %w", err)
	}
	if _, err := s.Cron.AddFunc(closeCron, func() { s.Broadcast("MARKET_CLOSE") }); err != nil {
		return fmt.Errorf("register market-close task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler and the delayed refresh loop.
func (s *Scheduler) Start() {
	s.Cron.Start()
	go s.refreshLoop()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// refreshLoop refreshes the global opportunity cache without broadcasting:
// first run after RefreshDelay, then every RefreshInterval.
func (s *Scheduler) refreshLoop() {
	select {
	case <-s.Ctx.Done():
		return
	case <-time.After(s.RefreshDelay):
	}
	s.refresh()

	ticker := time.NewTicker(s.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.Ctx.Done():
			return
		case <-ticker.C:
			s.refresh()
		}
	}
}

func (s *Scheduler) refresh() {
	log.Println("[INFO] refreshing opportunity cache")
	if _, err := s.Engine.RunScan(engine.GlobalChat, "REFRESH"); err != nil {
		log.Printf("[ERROR] cache refresh: %v", err)
	}
}

// Broadcast runs a scan against the default universe and delivers the top
// surviving opportunity to each subscriber according to their preferences.
func (s *Scheduler) Broadcast(trigger string) {
	log.Printf("[INFO] running broadcast pass (%s)", trigger)
	opps, err := s.Engine.RunScan(engine.GlobalChat, trigger)
	if err != nil {
		log.Printf("[ERROR] broadcast scan (%s): %v", trigger, err)
		return
	}

	for _, chatID := range s.Engine.Store.Subscribers() {
		prefs := s.Engine.Store.Preferences(chatID)
		opp, more, ok := PickForSubscriber(opps, prefs)
		if !ok {
			continue
		}
		s.trySend(chatID, notifier.FormatOpportunityAlert(opp, more))
		if s.Engine.Metrics != nil {
			s.Engine.Metrics.BroadcastsTotal.Inc()
		}
		if err := s.Engine.Recorder.RecordBroadcast(&recorder.BroadcastEvent{
			ChatID:     chatID,
			Symbol:     opp.Symbol,
			Direction:  opp.Direction,
			Confidence: opp.Confidence,
		}); err != nil {
			log.Printf("[ERROR] record broadcast: %v", err)
		}
	}
}

// PickForSubscriber selects the top opportunity passing the subscriber's
// filter and how many more survive behind it. Only the minimum-confidence
// preference gates delivery; the stored minimum risk/reward is informational
// (the global 1.5 floor already applied at build time).
func PickForSubscriber(opps []model.Opportunity, prefs model.Preferences) (*model.Opportunity, int, bool) {
	if !prefs.AlertsEnabled {
		return nil, 0, false
	}
	var surviving []model.Opportunity
	for _, opp := range opps {
		if opp.Confidence >= prefs.MinConfidence {
			surviving = append(surviving, opp)
		}
	}
	if len(surviving) == 0 {
		return nil, 0, false
	}
	return &surviving[0], len(surviving) - 1, true
}

func (s *Scheduler) trySend(chatID int64, text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, chatID, text, 3); err != nil {
		log.Printf("[ERROR] send notification to %d: %v", chatID, err)
	}
}
