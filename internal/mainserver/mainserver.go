// Package mainserver wires the portal together: it loads the catalog and the
// contract template, creates the shared session cache, and runs the public
// portal server and the ops API server.
package mainserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/spacehash/portal/internal/cache"
	"github.com/spacehash/portal/internal/catalog"
	"github.com/spacehash/portal/internal/contract"
	"github.com/spacehash/portal/internal/ops"
	"github.com/spacehash/portal/internal/portal"
	"github.com/spacehash/portal/internal/portalconfig"
)

// Server manages the Portal and Ops servers.
type Server struct {
	cfg          portalconfig.Config
	portalServer *portal.Server
	opsServer    *ops.Server
	sessions     *cache.Cache
}

// New creates the server instance. It loads the CSV resources and the PDF
// contract template, and initializes both HTTP services. Resource load
// failures are logged and degrade the rentals page, they do not prevent
// startup.
func New(cfg portalconfig.Config) *Server {

	// One shared TTL cache holds rental selections and generated contract
	// sets for every session.
	sessions := cache.New(cfg.SessionTTL())

	// Load the equipment catalog and the unavailable date ranges.
	cat := catalog.Load(cfg.Rentals.EquipmentCSV, cfg.Rentals.UnavailableCSV)

	// Load the fixed contract template. A missing template is logged here
	// and surfaces later as a generic generation failure.
	template, err := os.ReadFile(cfg.Rentals.ContractTemplate)
	if err != nil {
		slog.Error("Failed to load contract template", "file", cfg.Rentals.ContractTemplate, "error", err)
	}
	filler := contract.NewFiller(template, cfg.Rentals.OwnerName)

	portalServer := portal.New(cfg, cat, filler, sessions)
	opsServer := ops.New(cfg, cat)

	return &Server{
		cfg:          cfg,
		portalServer: portalServer,
		opsServer:    opsServer,
		sessions:     sessions,
	}
}

// Start starts both servers and blocks until one of them fails or the
// context is cancelled.
func (s *Server) Start(ctx context.Context) error {

	if s.portalServer == nil || s.opsServer == nil {
		return errors.New("server not initialized")
	}
	defer s.sessions.Stop()

	var wg sync.WaitGroup
	errChan := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.portalServer.Start(ctx); err != nil {
			errChan <- fmt.Errorf("portal server failed: %w", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.opsServer.Start(ctx); err != nil {
			errChan <- fmt.Errorf("ops server failed: %w", err)
		}
	}()

	slog.Info("Servers started",
		"portal_port", s.cfg.PortalPort,
		"ops_port", s.cfg.OpsPort,
		"portal_url", s.cfg.PortalURL)

	// Wait for either server to fail or context to be cancelled
	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		slog.Info("Shutting down servers")
		return nil
	}
}
