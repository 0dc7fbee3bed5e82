package converter

import (
	"context"

	docsysSvc "yogablocks/internal/domain/services/docsystem"
)

// markdownConverter is a passthrough: markdown is the storage format.
type markdownConverter struct{}

// NewMarkdownConverter creates a new markdown passthrough converter.
func NewMarkdownConverter() docsysSvc.ContentConverter {
	return &markdownConverter{}
}

// Convert returns the input unchanged.
func (c *markdownConverter) Convert(ctx context.Context, input []byte) (string, error) {
	return string(input), nil
}

// SupportedExtensions returns markdown file extensions.
func (c *markdownConverter) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

// Name returns the format name.
func (c *markdownConverter) Name() string {
	return "markdown"
}
