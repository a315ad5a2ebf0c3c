package portal

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// loadAboutContent reads the about page's markdown file, converts it to
// HTML and sanitizes the result. A missing or broken file is logged and the
// page renders empty.
func loadAboutContent(path string) string {
	src, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Failed to load about content", "file", path, "error", err)
		return ""
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		slog.Error("Failed to render about content", "file", path, "error", err)
		return ""
	}

	return string(bluemonday.UGCPolicy().SanitizeBytes(buf.Bytes()))
}
