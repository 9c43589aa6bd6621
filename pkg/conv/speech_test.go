package conv

import (
	"strings"
	"testing"
)

func TestMarkdownToSpeechText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Hello world",
			expected: "Hello world",
		},
		{
			name:     "bold stripped",
			input:    "**action items** are due Friday",
			expected: "action items are due Friday",
		},
		{
			name:     "italic stripped",
			input:    "*emphasis* here",
			expected: "emphasis here",
		},
		{
			name:     "inline code stripped",
			input:    "run `make test` now",
			expected: "run make test now",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToSpeechText([]byte(tt.input))
			if got != tt.expected {
				t.Errorf("MarkdownToSpeechText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMarkdownToSpeechTextLink(t *testing.T) {
	got := MarkdownToSpeechText([]byte("see [the doc](https://example.com/x) for details"))
	if strings.Contains(got, "https://") {
		t.Errorf("link URL should be omitted from speech text, got %q", got)
	}
	if !strings.Contains(got, "the doc") {
		t.Errorf("link label should survive, got %q", got)
	}
}
