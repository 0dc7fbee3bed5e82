package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTableNames(t *testing.T) {
	tables := NewTableNames("test_")
	assert.Equal(t, "test_documents", tables.Documents)
	assert.Equal(t, "test_document_links", tables.DocumentLinks)
}

func TestTableNames_ExpandSchema(t *testing.T) {
	tables := NewTableNames("dev_")
	got := tables.ExpandSchema("CREATE TABLE {{documents}}; CREATE TABLE {{document_links}} REFERENCES {{documents}}")
	assert.Equal(t, "CREATE TABLE dev_documents; CREATE TABLE dev_document_links REFERENCES dev_documents", got)
}

func TestLikePattern(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "plain", query: "warrior", want: "%warrior%"},
		{name: "percent escaped", query: "100%", want: `%100\%%`},
		{name: "underscore escaped", query: "a_b", want: `%a\_b%`},
		{name: "backslash escaped", query: `a\b`, want: `%a\\b%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LikePattern(tt.query))
		})
	}
}
