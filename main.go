package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spacehash/portal/internal/mainserver"
	"github.com/spacehash/portal/internal/portalconfig"
)

var (
	development bool

	configFile string
	portalPort string
	portalURL  string
	opsPort    string
)

func main() {
	// If we are in development environment or not
	flag.BoolVar(&development, "dev", false, "Development mode")

	// The YAML config file with site content and resource paths
	flag.StringVar(&configFile, "config", "", "Path to the YAML config file")

	// The URL and port for the public portal server
	flag.StringVar(&portalPort, "portal-port", "", "Port for the portal server")
	flag.StringVar(&portalURL, "portal-url", "", "Public URL of the portal server")

	// The port for the ops API server
	flag.StringVar(&opsPort, "ops-port", "", "Port for the ops API server")

	flag.Parse()

	// Check if we are in development or production.
	// The environment variable takes precedence over the flag
	if strings.ToLower(os.Getenv("PORTAL_DEVELOPMENT")) == "true" {
		development = true
	}
	if configFile == "" {
		configFile = os.Getenv("PORTAL_CONFIG")
	}

	// Initialize logging
	level := slog.LevelInfo
	if development {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Say if we are in development or not
	if development {
		slog.Info("Running in development mode")
	} else {
		slog.Info("Running in production mode")
	}

	// Load the configuration file over the defaults
	cfg, err := portalconfig.Load(configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg.Development = cfg.Development || development

	// Flags and environment override the file
	if portalPort != "" {
		cfg.PortalPort = portalPort
	} else if p := os.Getenv("PORTAL_PORT"); p != "" {
		cfg.PortalPort = p
	}
	if opsPort != "" {
		cfg.OpsPort = opsPort
	} else if p := os.Getenv("PORTAL_OPS_PORT"); p != "" {
		cfg.OpsPort = p
	}
	if portalURL != "" {
		cfg.PortalURL = portalURL
	} else if u := os.Getenv("PORTAL_URL"); u != "" {
		cfg.PortalURL = u
	}

	// Create the main server. This loads the catalog and the contract
	// template and initializes the individual HTTP services.
	srv := mainserver.New(cfg)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received")
		cancel()
	}()

	// Start server
	if err := srv.Start(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
