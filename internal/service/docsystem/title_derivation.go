package docsystem

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"yogablocks/internal/config"
	models "yogablocks/internal/domain/models/docsystem"
)

// titleParser only builds the block tree; DeriveTitle never renders.
var titleParser = goldmark.DefaultParser()

// DeriveTitle extracts the document title from a markdown body.
//
// The first heading (ATX or setext) wins and its source lines are removed from
// the returned body. Without a heading the first paragraph's text is the title
// and the body is unchanged. Headings inside code blocks do not count. An
// empty body yields "Untitled".
func DeriveTitle(markdown string) (title string, body string) {
	source := []byte(strings.ReplaceAll(markdown, "\r\n", "\n"))
	doc := titleParser.Parse(text.NewReader(source))

	var heading *ast.Heading
	var paragraph ast.Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if blockText(node, source) != "" {
				heading = node
				return ast.WalkStop, nil
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock:
			if paragraph == nil && blockText(node, source) != "" {
				paragraph = node
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	if heading == nil {
		if paragraph == nil {
			return clampTitle(""), markdown
		}
		return clampTitle(blockText(paragraph, source)), markdown
	}

	lines := strings.Split(string(source), "\n")
	first, last := headingLines(heading, source)
	rest := append(append([]string{}, lines[:first]...), lines[min(last+1, len(lines)):]...)
	return clampTitle(blockText(heading, source)), strings.Trim(strings.Join(rest, "\n"), "\n")
}

// blockText joins the inline source of a leaf block and drops markdown syntax
func blockText(n ast.Node, source []byte) string {
	segments := n.Lines()
	parts := make([]string, 0, segments.Len())
	for i := 0; i < segments.Len(); i++ {
		seg := segments.At(i)
		parts = append(parts, string(seg.Value(source)))
	}
	return plainText(strings.Join(parts, " "))
}

// headingLines returns the first and last source line of a heading.
// A setext heading also owns its underline.
func headingLines(h *ast.Heading, source []byte) (int, int) {
	segments := h.Lines()
	first := lineOf(source, segments.At(0).Start)
	last := lineOf(source, segments.At(segments.Len()-1).Start)

	// Only an ATX heading has '#' between the line start and its text
	lineStart := bytes.LastIndexByte(source[:segments.At(0).Start], '\n') + 1
	if !bytes.ContainsRune(source[lineStart:segments.At(0).Start], '#') {
		last++
	}
	return first, last
}

func lineOf(source []byte, offset int) int {
	return bytes.Count(source[:offset], []byte("\n"))
}

// deriveTitleFromHTML extracts the title from editor HTML. The first h1-h6
// with text wins and is removed; otherwise the first paragraph's text is used.
// It returns the body HTML left for conversion.
func deriveTitleFromHTML(html string) (title string, body string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("parse editor HTML: %w", err)
	}

	var heading *goquery.Selection
	doc.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) != "" {
			heading = s
			return false
		}
		return true
	})

	if heading != nil {
		title = collapseSpace(heading.Text())
		heading.Remove()
	} else {
		doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			title = collapseSpace(s.Text())
			return title == ""
		})
	}

	body, err = doc.Find("body").Html()
	if err != nil {
		return "", "", fmt.Errorf("serialize editor HTML: %w", err)
	}

	return clampTitle(title), body, nil
}

// plainText drops inline markdown: link targets, emphasis and code markers
func plainText(s string) string {
	s = inlineLink.ReplaceAllString(s, "$1")
	s = strings.NewReplacer("**", "", "__", "", "`", "", "*", "").Replace(s)
	s = strings.TrimLeft(s, "-+> ")
	return collapseSpace(s)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// clampTitle applies the placeholder and the length limit
func clampTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.UntitledTitle
	}
	return strings.TrimSpace(truncateRunes(title, config.MaxTitleLength))
}
