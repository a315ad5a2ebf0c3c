// Package html wraps the Fiber template engine used to render the portal
// screens, adding the response security headers on every render.
package html

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"

	"github.com/spacehash/portal/internal/errl"
)

// Renderer renders named templates into Fiber responses.
type Renderer struct {
	engine *html.Engine
}

// NewRenderer creates a new HTML renderer.
// It supports both embedded templates (in viewsfs) and external templates (in extDir).
// If extDir exists on disk it wins and reload controls template reloading,
// which is what development wants. viewsfs must be rooted at the views
// directory itself.
func NewRenderer(reload bool, viewsfs fs.FS, extDir string, extension string) (*Renderer, error) {

	engine, err := newEngine(reload, viewsfs, extDir, extension)
	if err != nil {
		return nil, errl.Error(err)
	}

	return &Renderer{engine: engine}, nil
}

func newEngine(reload bool, viewsfs fs.FS, extDir string, extension string) (*html.Engine, error) {

	// Check if extDir exists in the os file system
	exists := false
	fi, err := os.Stat(extDir)
	if err == nil && fi.IsDir() {
		exists = true
	}

	if exists {

		// Use the user-provided templates in the external directory
		slog.Info("Using external HTML templates", "dir", extDir)
		engine := html.NewFileSystem(http.Dir(extDir), extension)
		engine.Reload(reload)

		if err := engine.Load(); err != nil {
			return nil, errl.Errorf("Failed to load external HTML templates: %w", err)
		}

		return engine, nil

	}

	slog.Info("Using embedded HTML templates")
	engine := html.NewFileSystem(http.FS(viewsfs), extension)
	engine.Reload(reload)

	if err := engine.Load(); err != nil {
		return nil, errl.Errorf("Failed to load embedded HTML templates: %w", err)
	}

	return engine, nil
}

// ResponseSecurityHeaders sets the security headers for the response.
// Contract previews render in a same-origin iframe, so frame-ancestors
// allows 'self' rather than denying framing outright.
func ResponseSecurityHeaders(c *fiber.Ctx) {

	c.Set("Content-Security-Policy", "frame-ancestors 'self';")
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
	c.Set("Cross-Origin-Opener-Policy", "same-origin")
	c.Set("Cross-Origin-Resource-Policy", "same-site")
	c.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=(), interest-cohort=()")
	c.Set("X-Powered-By", "webserver")

}

func (h *Renderer) Render(c *fiber.Ctx, templateName string, data map[string]any, layout ...string) error {

	c.Set("Content-Type", "text/html; charset=utf-8")
	ResponseSecurityHeaders(c)

	out := &bytes.Buffer{}

	if err := h.engine.Render(out, templateName, data, layout...); err != nil {
		slog.Error("Error rendering template",
			slog.String("template", templateName),
			slog.String("error", err.Error()),
		)
		return fiber.NewError(fiber.StatusInternalServerError, "rendering response")
	}

	return c.Send(out.Bytes())

}
