package utils

import (
	"strings"
	"testing"
)

func TestCleanMarkdown(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"```markdown\n# Title\n\nBody\n```", "# Title\n\nBody"},
		{"```\n- item\n```", "- item"},
		{"  plain text  ", "plain text"},
		{"no fence ```inline``` here", "no fence ```inline``` here"},
	}
	for _, tt := range tests {
		if got := CleanMarkdown(tt.in); got != tt.want {
			t.Errorf("CleanMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("## Diagnosis\n\n- **one**\n- two\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"<h2>Diagnosis</h2>", "<li><strong>one</strong></li>", "<li>two</li>"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q:\n%s", want, html)
		}
	}
}

func TestValidateMarkdown(t *testing.T) {
	if ValidateMarkdown("   ") {
		t.Error("blank input should not validate")
	}
	if !ValidateMarkdown("Some *advice*") {
		t.Error("plain paragraph should validate")
	}
}
