package command

import (
	"context"

	"github.com/sandevgo/meetbot/internal/service/summary"
	"github.com/sandevgo/meetbot/pkg/log"
)

// SummaryCommand posts an on-demand digest of the meeting so far.
type SummaryCommand struct {
	summarizer *summary.Summarizer
}

func NewSummaryCommand(s *summary.Summarizer) *SummaryCommand {
	return &SummaryCommand{summarizer: s}
}

func (c *SummaryCommand) Name() string {
	return "summary"
}

func (c *SummaryCommand) Description() string {
	return "Summarize the meeting so far"
}

func (c *SummaryCommand) Execute(ctx context.Context, _ []string) (string, error) {
	text, err := c.summarizer.Summarize(ctx)
	if err != nil {
		// Participants get a fixed line, never the backend error
		log.FromCtx(ctx).Error().Err(err).Msg("on-demand summary failed")
		return "I couldn't generate a meeting summary right now.", nil
	}
	if text == summary.NoContent {
		return text, nil
	}
	return "Meeting Summary\n\n" + text, nil
}
