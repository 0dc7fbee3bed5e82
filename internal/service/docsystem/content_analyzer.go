package docsystem

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"yogablocks/internal/config"
	"yogablocks/internal/domain/services"
	"yogablocks/internal/service/docsystem/converter/sanitizer"
)

// inlineLink matches [text](url) and ![alt](url)
var inlineLink = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)

type contentAnalyzerService struct {
	stripper *sanitizer.HTMLSanitizer
}

// NewContentAnalyzer creates a new content analyzer service
func NewContentAnalyzer() services.ContentAnalyzer {
	return &contentAnalyzerService{stripper: sanitizer.NewStrictHTMLSanitizer()}
}

// Preview returns the first PreviewWordLimit words of the cleaned content,
// with "..." appended when the content is longer.
func (s *contentAnalyzerService) Preview(markdown string) string {
	words := strings.FieldsFunc(s.CleanMarkdown(markdown), unicode.IsSpace)
	if len(words) <= config.PreviewWordLimit {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:config.PreviewWordLimit], " ") + "..."
}

// CleanMarkdown removes markdown syntax and HTML tags from text
func (s *contentAnalyzerService) CleanMarkdown(markdown string) string {
	text := markdown

	// Remove code blocks
	text = s.removeCodeBlocks(text)

	// Keep link text, drop targets
	text = inlineLink.ReplaceAllString(text, "$1")

	// Remove HTML tags
	if stripped, err := s.stripper.Sanitize(text); err == nil {
		text = html.UnescapeString(stripped)
	}

	// Remove inline code
	text = strings.ReplaceAll(text, "`", "")

	// Remove bold and italic markers
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "*", "")
	text = strings.ReplaceAll(text, "__", "")
	text = strings.ReplaceAll(text, "~~", "")

	// Remove heading markers
	text = strings.ReplaceAll(text, "#", "")

	// Remove list markers
	lines := strings.Split(text, "\n")
	var cleanedLines []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") {
			line = strings.TrimPrefix(line, "- ")
		} else if strings.HasPrefix(line, "+ ") {
			line = strings.TrimPrefix(line, "+ ")
		}
		// Numbered list markers (e.g., "1. ", "2. ")
		if len(line) > 2 && unicode.IsDigit(rune(line[0])) && line[1] == '.' {
			line = line[2:]
		}
		// Blockquote markers
		line = strings.TrimLeft(line, "> ")
		if line == "---" {
			continue
		}
		cleanedLines = append(cleanedLines, line)
	}

	return strings.TrimSpace(strings.Join(cleanedLines, " "))
}

// removeCodeBlocks removes ```...``` code blocks from text
func (s *contentAnalyzerService) removeCodeBlocks(text string) string {
	for {
		start := strings.Index(text, "```")
		if start == -1 {
			break
		}
		end := strings.Index(text[start+3:], "```")
		if end == -1 {
			break
		}
		text = text[:start] + text[start+end+6:]
	}
	return text
}
