package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/meetbot/internal/core"
	"github.com/sandevgo/meetbot/internal/service/memory"
)

// NoContent is returned for an empty window without touching the
// completion backend.
const NoContent = "No meeting content to summarize."

const promptTemplate = `Summarize this meeting conversation concisely:

%s

Provide:
1. Key discussion points (2-3 bullets)
2. Important decisions (if any)
3. Action items (if any)

Keep it brief and actionable.`

// Summarizer folds the entire context window into a structured digest.
// Not on the per-utterance hot path; invoked at shutdown or on request.
type Summarizer struct {
	window    *memory.Window
	completer core.Completer
}

func NewSummarizer(window *memory.Window, completer core.Completer) *Summarizer {
	return &Summarizer{window: window, completer: completer}
}

func (s *Summarizer) Summarize(ctx context.Context) (string, error) {
	entries := s.window.All()
	if len(entries) == 0 {
		return NoContent, nil
	}

	lines := make([]string, 0, len(entries))
	for _, u := range entries {
		lines = append(lines, u.Speaker+": "+u.Text)
	}
	prompt := fmt.Sprintf(promptTemplate, strings.Join(lines, "\n"))

	text, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summarize meeting: %w", err)
	}
	return strings.TrimSpace(text), nil
}
