package metrics

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Veraticus/shopimpact/internal/tracker"
)

const shutdownTimeout = 3 * time.Second

// Server serves the metrics endpoint plus a JSON summary.
type Server struct {
	collector *Collector
	gatherer  prometheus.Gatherer
	logger    *slog.Logger
	tls       *tls.Config
}

// NewServer registers the collector on a fresh registry and returns a server for it.
func NewServer(collector *Collector, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	reg := prometheus.NewRegistry()
	collector.Register(reg)
	return &Server{collector: collector, gatherer: reg, logger: logger}
}

// UseTLS makes Run serve HTTPS with cert.
func (s *Server) UseTLS(cert tls.Certificate) {
	s.tls = &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}
}

// Router returns the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/api/summary", s.handleSummary)

	// metrics (refresh on scrape)
	metricsHandler := promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})
	r.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		if err := s.collector.Refresh(r.Context()); err != nil {
			s.logger.Warn("metrics refresh failed", "error", err)
		}
		metricsHandler.ServeHTTP(w, r)
	})
	return r
}

type categoryResponse struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Spend    float64 `json:"spend"`
	CO2      float64 `json:"co2_kg"`
	Eco      bool    `json:"eco"`
}

type summaryResponse struct {
	GeneratedAt     time.Time          `json:"generated_at"`
	Name            string             `json:"name"`
	Purchases       int                `json:"purchases"`
	EcoPurchases    int                `json:"eco_purchases"`
	TotalSpend      float64            `json:"total_spend"`
	TotalCO2        float64            `json:"total_co2_kg"`
	EcoShare        float64            `json:"eco_share"`
	MonthSpend      float64            `json:"month_spend"`
	MonthCO2        float64            `json:"month_co2_kg"`
	MonthlyBudget   float64            `json:"monthly_budget"`
	CO2Goal         float64            `json:"co2_goal_kg"`
	BudgetRemaining float64            `json:"budget_remaining"`
	CO2Remaining    float64            `json:"co2_remaining_kg"`
	Badges          []string           `json:"badges"`
	BadgesAvailable int                `json:"badges_available"`
	Categories      []categoryResponse `json:"categories"`
}

func newSummaryResponse(s tracker.Summary) summaryResponse {
	resp := summaryResponse{
		GeneratedAt:     s.GeneratedAt,
		Name:            s.Name,
		Purchases:       s.Purchases,
		EcoPurchases:    s.EcoCount,
		TotalSpend:      s.TotalSpend,
		TotalCO2:        s.TotalCO2,
		EcoShare:        s.EcoShare,
		MonthSpend:      s.MonthSpend,
		MonthCO2:        s.MonthCO2,
		MonthlyBudget:   s.MonthlyBudget,
		CO2Goal:         s.CO2Goal,
		BudgetRemaining: s.BudgetRemaining,
		CO2Remaining:    s.CO2Remaining,
		Badges:          make([]string, 0, len(s.Badges)),
		BadgesAvailable: s.BadgesTotal,
		Categories:      make([]categoryResponse, 0, len(s.Categories)),
	}
	for _, b := range s.Badges {
		resp.Badges = append(resp.Badges, b.ID)
	}
	for _, c := range s.Categories {
		resp.Categories = append(resp.Categories, categoryResponse(c))
	}
	return resp
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	summary := s.collector.provider.Summary(s.collector.clock())
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(newSummaryResponse(summary)); err != nil {
		s.logger.Warn("failed to encode summary", "error", err)
	}
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		TLSConfig:         s.tls,
	}

	go func() {
		<-ctx.Done()
		cctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(cctx)
	}()

	s.logger.Info("metrics server listening", "addr", addr, "tls", s.tls != nil)
	var err error
	if s.tls != nil {
		err = srv.ListenAndServeTLS("", "")
	} else {
		err = srv.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
