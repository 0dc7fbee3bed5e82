package docsystem

import "context"

// ContentConverter converts content to the storage markdown format.
// Each converter handles a specific input type (html, txt, markdown).
//
// Implementations should be stateless and thread-safe.
type ContentConverter interface {
	// Convert transforms input content to markdown.
	Convert(ctx context.Context, input []byte) (markdown string, err error)

	// SupportedExtensions returns file extensions this converter handles,
	// including the leading dot (e.g., [".html", ".htm"]).
	SupportedExtensions() []string

	// Name returns the format name ("html", "markdown", "text")
	Name() string
}

// MarkdownRenderer renders storage markdown to sanitized HTML.
type MarkdownRenderer interface {
	Render(markdown string) (string, error)
}
