package docsystem

import (
	"regexp"

	models "yogablocks/internal/domain/models/docsystem"
)

// libraryLinkPattern matches [label](/library/<id>). The label excludes ']' and the id excludes ')'.
var libraryLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\(` + regexp.QuoteMeta(models.LibraryPathPrefix) + `([^)]+)\)`)

// ExtractLinks returns every library reference in markdown in scan order.
// Position is the match ordinal, not a byte offset. Ids are not validated.
func ExtractLinks(markdown string) []models.ExtractedLink {
	matches := libraryLinkPattern.FindAllStringSubmatch(markdown, -1)

	links := make([]models.ExtractedLink, 0, len(matches))
	for i, m := range matches {
		links = append(links, models.ExtractedLink{
			Label:    m[1],
			TargetID: m[2],
			Position: i,
		})
	}
	return links
}

// LibraryLink formats a reference in the inline link syntax.
func LibraryLink(label, targetID string) string {
	return "[" + label + "](" + models.LibraryPathPrefix + targetID + ")"
}
