package docsystem

import (
	"strings"

	models "yogablocks/internal/domain/models/docsystem"
)

// quoteVariants maps the smart single quotes and the primes to a straight apostrophe
var quoteVariants = strings.NewReplacer(
	"\u2018", "'", // left single quotation mark
	"\u2019", "'", // right single quotation mark
	"\u201A", "'", // single low-9 quotation mark
	"\u201B", "'", // single high-reversed-9 quotation mark
	"\u2032", "'", // prime
	"\u2035", "'", // reversed prime
)

// NormalizeTitle canonicalizes a title for equality comparison: trimmed,
// lowercased, whitespace runs collapsed and single-quote variants unified.
// Accents, double quotes and dashes are left as they are.
func NormalizeTitle(title string) string {
	title = quoteVariants.Replace(title)
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

// TitleIndex resolves titles to document ids by normalized title.
// When two documents share a normalized title the first one added wins.
type TitleIndex struct {
	ids map[string]string
}

// NewTitleIndex builds an index over entries in order.
func NewTitleIndex(entries []models.TitleEntry) *TitleIndex {
	idx := &TitleIndex{ids: make(map[string]string, len(entries))}
	for _, e := range entries {
		idx.Add(e.Title, e.ID)
	}
	return idx
}

// Add registers a title unless its normalized form is already taken.
func (idx *TitleIndex) Add(title, id string) {
	key := NormalizeTitle(title)
	if key == "" {
		return
	}
	if _, exists := idx.ids[key]; !exists {
		idx.ids[key] = id
	}
}

// Lookup returns the id registered for title.
func (idx *TitleIndex) Lookup(title string) (string, bool) {
	if idx == nil {
		return "", false
	}
	id, ok := idx.ids[NormalizeTitle(title)]
	return id, ok
}

// Len returns the number of distinct normalized titles.
func (idx *TitleIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.ids)
}
