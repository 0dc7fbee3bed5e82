package services

// ContentAnalyzer handles content analysis operations
type ContentAnalyzer interface {
	// CleanMarkdown removes markdown syntax and HTML tags from content
	CleanMarkdown(markdown string) string

	// Preview returns the first words of the cleaned content for list cards
	Preview(markdown string) string
}
