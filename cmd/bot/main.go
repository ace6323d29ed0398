package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"OpportunityScout/internal/collector"
	"OpportunityScout/internal/config"
	"OpportunityScout/internal/engine"
	"OpportunityScout/internal/metrics"
	"OpportunityScout/internal/notifier"
	"OpportunityScout/internal/recorder"
	"OpportunityScout/internal/scanner"
	"OpportunityScout/internal/scheduler"
	"OpportunityScout/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] OpportunityScout starting...")

	// Load keys.env / .env if present
	for _, f := range []string{"keys.env", ".env"} {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				log.Printf("[WARN] load %s: %v", f, err)
			}
		}
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.Provider == "polygon" {
		fetcher = collector.NewPolygonFetcher(cfg.DataSource.PolygonAPIKey)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init metrics
	m := metrics.NewMetrics()
	msrv := metrics.NewServer(cfg.Metrics.ListenAddr)
	msrv.Start()

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init scanner and engine
	sc := scanner.New(fetcher, cfg.Scanner.Symbols, cfg.Scanner.LookbackDays)
	sc.Metrics = m
	st := store.New()
	eng := engine.New(sc, st, rec, m, fetcher)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Proxy)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, eng, tn)
	if d, err := cfg.RefreshDelay(); err == nil {
		sched.RefreshDelay = d
	}
	if d, err := cfg.RefreshInterval(); err == nil {
		sched.RefreshInterval = d
	}
	if err := sched.RegisterAll(cfg.Schedule.MarketOpenCron, cfg.Schedule.MarketCloseCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: warm the cache immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, warming opportunity cache now")
		go func() {
			if _, err := eng.RunScan(engine.GlobalChat, "STARTUP"); err != nil {
				log.Printf("[ERROR] startup scan: %v", err)
			}
		}()
	}

	log.Println("[INFO] OpportunityScout is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	msrv.Stop(context.Background())
	log.Println("[INFO] OpportunityScout stopped")
}
