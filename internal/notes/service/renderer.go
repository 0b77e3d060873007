// Package service provides the Markdown renderer for the shared note.
package service

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	apperrors "github.com/briefnote/briefnote/internal/errors"
)

// Renderer converts note Markdown into sanitized HTML previews.
type Renderer struct {
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewRenderer creates a new Renderer with GFM extensions and a UGC
// sanitization policy. Raw HTML in the note survives the Markdown pass but
// is stripped by the sanitizer.
func NewRenderer() *Renderer {
	return &Renderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Render converts a Markdown string to sanitized HTML.
// Returns empty string for empty input.
func (r *Renderer) Render(source string) (string, error) {
	if source == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(source), &buf); err != nil {
		return "", apperrors.Wrap(err, "failed to render markdown")
	}

	return r.sanitizer.Sanitize(buf.String()), nil
}
