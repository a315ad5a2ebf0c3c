// Package portal implements the public website: the landing portal, the
// static pages and the equipment-rental workflow.
package portal

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/spacehash/portal/internal/cache"
	"github.com/spacehash/portal/internal/catalog"
	"github.com/spacehash/portal/internal/contract"
	"github.com/spacehash/portal/internal/html"
	"github.com/spacehash/portal/internal/portalconfig"
)

//go:embed views/*
var viewsfs embed.FS

// ContractFiller produces the filled contract documents for a submission.
type ContractFiller interface {
	Fill(ctx context.Context, req contract.Request) ([]contract.Generated, error)
}

// Server is the public portal server.
type Server struct {
	cfg        portalconfig.Config
	httpServer *fiber.App
	htmlRender *html.Renderer
	cache      *cache.Cache
	catalog    *catalog.Catalog
	filler     ContractFiller
	theme      *Theme

	tracks []string
	about  string
}

// New creates the portal server.
func New(cfg portalconfig.Config, cat *catalog.Catalog, filler ContractFiller, sessions *cache.Cache) *Server {

	views, err := fs.Sub(viewsfs, "views")
	if err != nil {
		slog.Error("Failed to access embedded views", "error", err)
		panic(err)
	}

	// The engine to display the HTML screens to the users. In development
	// the on-disk views directory wins and templates reload on change.
	htmlrender, err := html.NewRenderer(cfg.Development, views, "internal/portal/views", ".html")
	if err != nil {
		slog.Error("Failed to initialize template engine", "error", err)
		panic(err)
	}

	httpServer := fiber.New(fiber.Config{
		AppName:                 "Space Hash Portal",
		ServerHeader:            "SpaceHash",
		EnableTrustedProxyCheck: false,
		ReadTimeout:             30 * time.Second,
		WriteTimeout:            30 * time.Second,
	})

	// Recovers from panics anywhere in the stack chain
	httpServer.Use(recover.New())

	// Helmet middleware helps secure the app by setting various HTTP headers
	httpServer.Use(helmet.New(helmet.Config{ContentSecurityPolicy: "frame-ancestors 'self';"}))

	// Ignores favicon requests
	httpServer.Use(favicon.New())

	// Logs HTTP request/response details
	httpServer.Use(logger.New())

	// Enable CORS for all origins
	httpServer.Use(cors.New())

	s := &Server{
		cfg:        cfg,
		httpServer: httpServer,
		htmlRender: htmlrender,
		cache:      sessions,
		catalog:    cat,
		filler:     filler,
		theme:      NewTheme("dark"),
		tracks:     loadTracks(cfg.Audio.TracksFile),
		about:      loadAboutContent(cfg.About.ContentFile),
	}

	// Health check endpoint
	s.httpServer.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "hostname": c.Hostname()})
	})

	s.registerPageHandlers()
	s.registerRentalHandlers()

	return s
}

// Start starts the server
func (s *Server) Start(ctx context.Context) error {

	if s.httpServer == nil {
		return errors.New("server not initialized")
	}

	addr := net.JoinHostPort("0.0.0.0", s.cfg.PortalPort)
	slog.Info("Starting portal server", "addr", addr)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Listen(addr); err != nil {
			errChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return s.httpServer.Shutdown()
	}

}

// viewData builds the data map every view receives, merged with the
// page-specific entries. The theme mode is threaded explicitly into each
// render rather than living in any ambient state.
func (s *Server) viewData(extra fiber.Map) map[string]any {
	data := map[string]any{
		"siteName": s.cfg.Site.Name,
		"tagline":  s.cfg.Site.Tagline,
		"theme":    s.theme.Mode(),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// loadTracks reads the newline-delimited audio track URLs. Failure is
// logged and the audio page shows no embeds.
func loadTracks(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Failed to load audio tracks", "file", path, "error", err)
		return nil
	}

	var tracks []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			tracks = append(tracks, line)
		}
	}
	return tracks
}
