// Package report renders Markdown results as a standalone, sanitized HTML file.
package report

import (
	"bytes"
	"fmt"
	"html"
	"os"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/ericfisherdev/techinsights-action/internal/domain/port/driven"
)

var (
	mdRenderer    goldmark.Markdown
	htmlSanitizer *bluemonday.Policy
)

func init() {
	mdRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)

	htmlSanitizer = bluemonday.UGCPolicy()
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>
`

// Compile-time interface satisfaction check.
var _ driven.ReportWriter = (*Writer)(nil)

// Writer writes HTML reports to the filesystem.
type Writer struct {
	title string
}

// NewWriter creates a Writer whose pages carry the given title.
func NewWriter(title string) *Writer {
	return &Writer{title: title}
}

// WriteReport renders markdown and writes it as an HTML page to path.
func (w *Writer) WriteReport(path, markdown string) error {
	page := fmt.Sprintf(pageTemplate, html.EscapeString(w.title), RenderMarkdown(markdown))
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown converts a markdown string to sanitized HTML.
// Returns empty string for empty input.
func RenderMarkdown(src string) string {
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return htmlSanitizer.Sanitize(src)
	}

	return htmlSanitizer.Sanitize(buf.String())
}
