package converter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverterRegistry_Routing(t *testing.T) {
	r := NewConverterRegistry()

	tests := []struct {
		ext  string
		want string
	}{
		{".md", "markdown"},
		{".MARKDOWN", "markdown"},
		{".txt", "text"},
		{".html", "html"},
		{".htm", "html"},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			c := r.GetConverter(tt.ext)
			require.NotNil(t, c)
			assert.Equal(t, tt.want, c.Name())
		})
	}

	assert.Nil(t, r.GetConverter(".pdf"))
	assert.NotNil(t, r.GetByName("HTML"))
	assert.Nil(t, r.GetByName("docx"))

	_, err := r.Convert(context.Background(), "pose.pdf", []byte("x"))
	assert.Error(t, err)

	_, err = r.ConvertFormat(context.Background(), "docx", []byte("x"))
	assert.Error(t, err)
}

func TestHTMLConverter_Convert(t *testing.T) {
	c := NewHTMLConverter()

	input := `<h2>Benefits</h2><ul><li>Calms the mind</li></ul>` +
		`<p>See <a href="/library/11111111-1111-1111-1111-111111111111">Warrior II</a></p>` +
		`<script>alert(1)</script>`

	got, err := c.Convert(context.Background(), []byte(input))
	require.NoError(t, err)

	assert.Contains(t, got, "## Benefits")
	assert.Contains(t, got, "- Calms the mind")
	assert.Contains(t, got, "[Warrior II](/library/11111111-1111-1111-1111-111111111111)")
	assert.NotContains(t, got, "alert")
}

func TestPassthroughConverters(t *testing.T) {
	input := "# Title\n\nBody with [link](/library/abc)"
	for _, c := range []interface {
		Convert(context.Context, []byte) (string, error)
	}{NewMarkdownConverter(), NewTextConverter()} {
		got, err := c.Convert(context.Background(), []byte(input))
		require.NoError(t, err)
		assert.Equal(t, input, got)
	}
}

func TestMarkdownRenderer_Render(t *testing.T) {
	r := NewMarkdownRenderer()

	got, err := r.Render("Hold for **five** breaths. See [Tree Pose](/library/abc).\n\n<script>alert(1)</script>")
	require.NoError(t, err)

	assert.Contains(t, got, "<strong>five</strong>")
	assert.Contains(t, got, `href="/library/abc"`)
	assert.False(t, strings.Contains(got, "<script"), "raw HTML must not survive: %s", got)
}
