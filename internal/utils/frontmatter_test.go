package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantType  string
		wantBody  string
		wantErr   bool
	}{
		{
			name:     "no frontmatter",
			input:    "# Tree Pose\n\nBalance.",
			wantBody: "# Tree Pose\n\nBalance.",
		},
		{
			name:      "title and type",
			input:     "---\ntitle: Warrior II\ndoc_type: asana\n---\n## Category\nStanding",
			wantTitle: "Warrior II",
			wantType:  "asana",
			wantBody:  "## Category\nStanding",
		},
		{
			name:      "crlf opening",
			input:     "---\r\ntitle: Flow\r\n---\r\nBody",
			wantTitle: "Flow",
			wantBody:  "Body",
		},
		{
			name:    "unterminated",
			input:   "---\ntitle: Flow\n",
			wantErr: true,
		},
		{
			name:    "bad yaml",
			input:   "---\ntitle: [unclosed\n---\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, err := ParseFrontmatter([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, fm.Title)
			assert.Equal(t, tt.wantType, fm.DocType)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
