package docsystem

import (
	"strings"
	"testing"
)

func TestContentAnalyzer_CleanMarkdown(t *testing.T) {
	analyzer := NewContentAnalyzer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"headings and emphasis", "## Benefits\n**Strong** _legs_", "Benefits Strong _legs_"},
		{"links keep their text", "See [Warrior II](/library/abc) and ![img](x.png)", "See Warrior II and img"},
		{"lists", "- one\n+ two\n1. three", "one two three"},
		{"html is stripped", "<p>Hold <script>x()</script>still</p>", "Hold still"},
		{"code blocks removed", "before\n```\ncode\n```\nafter", "before  after"},
		{"entities survive", "Child's Pose & more", "Child's Pose & more"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analyzer.CleanMarkdown(tt.input); got != tt.want {
				t.Errorf("CleanMarkdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContentAnalyzer_Preview(t *testing.T) {
	analyzer := NewContentAnalyzer()

	if got := analyzer.Preview(""); got != "" {
		t.Errorf("Preview(\"\") = %q", got)
	}

	short := "Stand tall with feet together."
	if got := analyzer.Preview(short); got != short {
		t.Errorf("Preview() = %q, want %q", got, short)
	}

	long := strings.Repeat("breathe ", 30)
	got := analyzer.Preview(long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Preview() = %q, want trailing ellipsis", got)
	}
	if n := len(strings.Fields(strings.TrimSuffix(got, "..."))); n != 25 {
		t.Errorf("Preview() has %d words, want 25", n)
	}
}
