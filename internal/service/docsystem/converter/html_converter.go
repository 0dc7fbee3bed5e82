package converter

import (
	"context"
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"

	docsysSvc "yogablocks/internal/domain/services/docsystem"
	"yogablocks/internal/service/docsystem/converter/sanitizer"
)

// htmlConverter converts editor or imported HTML to storage markdown.
// Sanitizing runs before conversion so scripts and event handlers never
// reach the markdown.
type htmlConverter struct {
	sanitizer *sanitizer.HTMLSanitizer
	converter *md.Converter
}

// NewHTMLConverter creates a new HTML to markdown converter.
// Headings are written in ATX style ("## Benefits") and bullets with "-",
// the forms the asana parser reads.
func NewHTMLConverter() docsysSvc.ContentConverter {
	return &htmlConverter{
		sanitizer: sanitizer.NewHTMLSanitizer(),
		converter: md.NewConverter("", true, &md.Options{
			HeadingStyle:     "atx",
			BulletListMarker: "-",
		}),
	}
}

// Convert sanitizes then converts HTML to markdown.
func (c *htmlConverter) Convert(ctx context.Context, input []byte) (string, error) {
	sanitized, err := c.sanitizer.Sanitize(string(input))
	if err != nil {
		return "", fmt.Errorf("sanitize HTML: %w", err)
	}

	markdown, err := c.converter.ConvertString(sanitized)
	if err != nil {
		return "", fmt.Errorf("convert HTML to markdown: %w", err)
	}

	return markdown, nil
}

// SupportedExtensions returns HTML file extensions.
func (c *htmlConverter) SupportedExtensions() []string {
	return []string{".html", ".htm"}
}

// Name returns the format name.
func (c *htmlConverter) Name() string {
	return "html"
}
