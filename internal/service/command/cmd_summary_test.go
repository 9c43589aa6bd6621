package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sandevgo/meetbot/internal/core"
	"github.com/sandevgo/meetbot/internal/service/memory"
	"github.com/sandevgo/meetbot/internal/service/summary"
)

type fixedCompleter struct {
	reply string
	err   error
}

func (f *fixedCompleter) Complete(context.Context, string) (string, error) {
	return f.reply, f.err
}

func TestSummaryCommandSuccess(t *testing.T) {
	w := memory.NewWindow(10)
	w.Append(core.Utterance{ID: "1", Speaker: "Alice", Text: "hello", Origin: core.OriginSpeaker})

	cmd := NewSummaryCommand(summary.NewSummarizer(w, &fixedCompleter{reply: "- greeted"}))
	out, err := cmd.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Meeting Summary") || !strings.Contains(out, "- greeted") {
		t.Errorf("unexpected summary output: %q", out)
	}
}

func TestSummaryCommandEmptyWindow(t *testing.T) {
	cmd := NewSummaryCommand(summary.NewSummarizer(memory.NewWindow(10), &fixedCompleter{}))
	out, err := cmd.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != summary.NoContent {
		t.Errorf("got %q, want %q", out, summary.NoContent)
	}
}

func TestSummaryCommandFailureHidesError(t *testing.T) {
	w := memory.NewWindow(10)
	w.Append(core.Utterance{ID: "1", Speaker: "Alice", Text: "hello", Origin: core.OriginSpeaker})

	cmd := NewSummaryCommand(summary.NewSummarizer(w, &fixedCompleter{err: errors.New("rate limited: key xyz")}))
	out, err := cmd.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("command must not propagate backend errors, got %v", err)
	}
	if strings.Contains(out, "xyz") {
		t.Errorf("backend error leaked: %q", out)
	}
}
