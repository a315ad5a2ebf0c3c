// Package ops exposes a small read-only JSON API next to the portal:
// health, the equipment catalog, the unavailable ranges, availability checks
// and price quotes. It exists so external tooling can query the same data
// the rentals page renders.
package ops

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	json "github.com/goccy/go-json"

	"github.com/spacehash/portal/internal/availability"
	"github.com/spacehash/portal/internal/catalog"
	"github.com/spacehash/portal/internal/portalconfig"
)

const dateLayout = "2006-01-02"

// Server is the ops API server.
type Server struct {
	cfg     portalconfig.Config
	catalog *catalog.Catalog
	router  chi.Router
}

// New creates the ops server.
func New(cfg portalconfig.Config, cat *catalog.Catalog) *Server {
	s := &Server{cfg: cfg, catalog: cat}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/equipment", s.handleEquipment)
		r.Get("/unavailable", s.handleUnavailable)
		r.Get("/availability", s.handleAvailability)
		r.Post("/quote", s.handleQuote)
	})

	s.router = r
	return s
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server until it fails or the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort("0.0.0.0", s.cfg.OpsPort)
	slog.Info("Starting ops server", "addr", addr)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"catalog_loaded": s.catalog.Loaded(),
	})
}

func (s *Server) handleEquipment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"equipment": s.catalog.Equipment,
	})
}

type unavailableRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (s *Server) handleUnavailable(w http.ResponseWriter, r *http.Request) {
	ranges := make([]unavailableRange, 0, len(s.catalog.Unavailable))
	for _, u := range s.catalog.Unavailable {
		ranges = append(ranges, unavailableRange{
			StartDate: u.Start.Format(dateLayout),
			EndDate:   u.End.Format(dateLayout),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"unavailable": ranges})
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid or missing date, want YYYY-MM-DD"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":        d.Format(dateLayout),
		"unavailable": availability.IsDateUnavailable(d, s.catalog.Unavailable),
	})
}

type quoteRequest struct {
	Items []struct {
		ID       int    `json:"id"`
		Quantity string `json:"quantity"`
	} `json:"items"`
	Dates []string `json:"dates"`
}

// handleQuote prices a prospective selection. It reports both totals the
// workflow uses: the per-day rate written into every contract and the
// multi-day total shown in the email summary.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}

	state := newQuoteState(s.catalog, req)

	days := 0
	for _, raw := range req.Dates {
		if _, err := time.Parse(dateLayout, raw); err == nil {
			days++
		}
	}

	perDay := state.PerDayTotal(s.catalog.Equipment)
	writeJSON(w, http.StatusOK, map[string]any{
		"per_day_total": perDay,
		"days":          days,
		"total":         perDay * float64(days),
	})
}
