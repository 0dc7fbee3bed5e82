package repository

import (
	"fmt"
	"strings"
)

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Documents     string
	DocumentLinks string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Documents:     fmt.Sprintf("%sdocuments", prefix),
		DocumentLinks: fmt.Sprintf("%sdocument_links", prefix),
	}
}

// ExpandSchema substitutes {{documents}} and {{document_links}} placeholders
// in an embedded schema file with the prefixed table names.
func (t *TableNames) ExpandSchema(schema string) string {
	return strings.NewReplacer(
		"{{documents}}", t.Documents,
		"{{document_links}}", t.DocumentLinks,
	).Replace(schema)
}

// LikePattern builds a "contains" LIKE pattern, escaping wildcards in the query.
// The pattern must be used with ESCAPE '\'.
func LikePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	return "%" + escaped + "%"
}
