package converter

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	docsysSvc "yogablocks/internal/domain/services/docsystem"
	"yogablocks/internal/service/docsystem/converter/sanitizer"
)

// markdownRenderer renders storage markdown to HTML for display.
// goldmark drops raw HTML; the output is sanitized as well.
type markdownRenderer struct {
	md        goldmark.Markdown
	sanitizer *sanitizer.HTMLSanitizer
}

// NewMarkdownRenderer creates a GFM renderer with HTML sanitizing.
func NewMarkdownRenderer() docsysSvc.MarkdownRenderer {
	return &markdownRenderer{
		md:        goldmark.New(goldmark.WithExtensions(extension.GFM)),
		sanitizer: sanitizer.NewHTMLSanitizer(),
	}
}

// Render converts markdown to sanitized HTML.
func (r *markdownRenderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return r.sanitizer.Sanitize(buf.String())
}
