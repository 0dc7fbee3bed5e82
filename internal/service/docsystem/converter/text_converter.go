package converter

import (
	"context"

	docsysSvc "yogablocks/internal/domain/services/docsystem"
)

// textConverter treats plain text as markdown.
type textConverter struct{}

// NewTextConverter creates a new text converter.
func NewTextConverter() docsysSvc.ContentConverter {
	return &textConverter{}
}

// Convert returns the input as-is since plain text is valid markdown.
func (c *textConverter) Convert(ctx context.Context, input []byte) (string, error) {
	return string(input), nil
}

// SupportedExtensions returns text file extensions.
func (c *textConverter) SupportedExtensions() []string {
	return []string{".txt", ".text"}
}

// Name returns the format name.
func (c *textConverter) Name() string {
	return "text"
}
