package metrics

import (
	"context"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the scanning engine.
type Metrics struct {
	ScansTotal         prometheus.Counter
	ScanDuration       prometheus.Histogram
	SymbolsFailed      prometheus.Counter
	OpportunitiesFound prometheus.Gauge
	BroadcastsTotal    prometheus.Counter
	Subscribers        prometheus.Gauge
}

// NewMetrics registers and returns all Prometheus metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		ScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scout_scans_total",
			Help: "Total completed scan passes",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scout_scan_duration_seconds",
			Help:    "Scan pass latency",
			Buckets: prometheus.DefBuckets,
		}),
		SymbolsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scout_symbols_failed_total",
			Help: "Per-symbol fetch or analysis failures (skipped, not fatal)",
		}),
		OpportunitiesFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scout_opportunities_found",
			Help: "Opportunities accepted by the most recent scan pass",
		}),
		BroadcastsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scout_broadcasts_sent_total",
			Help: "Opportunity alerts delivered to subscribers",
		}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scout_subscribers",
			Help: "Current subscriber count",
		}),
	}

	prometheus.MustRegister(
		m.ScansTotal,
		m.ScanDuration,
		m.SymbolsFailed,
		m.OpportunitiesFound,
		m.BroadcastsTotal,
		m.Subscribers,
	)
	return m
}

// Server runs an HTTP server exposing /metrics and /healthz.
type Server struct {
	srv *http.Server
}

// NewServer creates the metrics and liveness server.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return &Server{
		srv: &http.Server{Addr: addr, Handler: mux},
	}
}

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		log.Printf("[INFO] metrics server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("[ERROR] metrics server: %v", err)
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) {
	s.srv.Shutdown(ctx)
}
