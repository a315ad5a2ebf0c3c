package portal

import (
	"html/template"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spacehash/portal/internal/html"
)

func (s *Server) registerPageHandlers() {

	// The landing portal page, with the roster reveal
	s.httpServer.Get("/", s.pagePortal)
	s.httpServer.Get("/home", s.pagePortal)

	// Static pages
	s.httpServer.Get("/about", s.pageAbout)
	s.httpServer.Get("/audio", s.pageAudio)
	s.httpServer.Get("/visual", s.pageVisual)

	// The single process-wide theme toggle
	s.httpServer.Post("/theme/toggle", s.toggleTheme)

}

func (s *Server) pagePortal(c *fiber.Ctx) error {
	return s.htmlRender.Render(c, "index", s.viewData(fiber.Map{
		"roster": s.cfg.Site.Roster,
	}), "layouts/main")
}

func (s *Server) pageAbout(c *fiber.Ctx) error {
	// The content is sanitized at load time, render it as-is.
	return s.htmlRender.Render(c, "about", s.viewData(fiber.Map{
		"content": template.HTML(s.about),
	}), "layouts/main")
}

func (s *Server) pageAudio(c *fiber.Ctx) error {
	embeds := make([]string, 0, len(s.tracks))
	for _, track := range s.tracks {
		embeds = append(embeds, soundcloudEmbedURL(track))
	}
	return s.htmlRender.Render(c, "audio", s.viewData(fiber.Map{
		"tracks": embeds,
	}), "layouts/main")
}

func (s *Server) pageVisual(c *fiber.Ctx) error {
	return s.htmlRender.Render(c, "visual", s.viewData(nil), "layouts/main")
}

func (s *Server) toggleTheme(c *fiber.Ctx) error {
	mode := s.theme.Toggle()
	html.ResponseSecurityHeaders(c)

	// Back to the page the toggle was pressed on
	referer := c.Get("Referer")
	if referer == "" {
		referer = "/"
	}
	c.Cookie(&fiber.Cookie{Name: "theme", Value: mode, SameSite: "Lax"})
	return c.Redirect(referer, fiber.StatusSeeOther)
}

// soundcloudEmbedURL builds the embedded-player URL for one track.
func soundcloudEmbedURL(track string) string {
	return "https://w.soundcloud.com/player/?url=" + url.QueryEscape(track) +
		"&color=%23242424&auto_play=false&hide_related=true&show_comments=false&show_user=true&show_reposts=false&show_teaser=false&visual=true"
}
