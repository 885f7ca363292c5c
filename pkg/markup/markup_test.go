package markup

import (
	"strings"
	"testing"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"paragraph", "hello", "<p>hello</p>"},
		{"emphasis", "*hi*", "<em>hi</em>"},
		{"strong", "**bold**", "<strong>bold</strong>"},
		{"heading", "# Title", "Title</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Markdown(tt.src)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Markdown(%q) = %q, want it to contain %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestMarkdownIsPure(t *testing.T) {
	if Markdown("same *input*") != Markdown("same *input*") {
		t.Error("expected identical output for identical input")
	}
}

func TestOr(t *testing.T) {
	if Or(nil)("x") != Markdown("x") {
		t.Error("nil renderer should fall back to Markdown")
	}
	if Or(Plain)("<b>x</b>") != "<b>x</b>" {
		t.Error("explicit renderer should be used")
	}
}
