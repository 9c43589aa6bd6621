package stream

import (
	"context"
	"fmt"

	"github.com/sandevgo/meetbot/internal/core"
)

// Poller pulls recent channel messages as utterances. Deduplication
// against earlier polls belongs to the caller; the poller only maps and
// tags what the channel currently holds.
type Poller struct {
	client *Client
}

func NewPoller(client *Client) *Poller {
	return &Poller{client: client}
}

func (p *Poller) Poll(ctx context.Context) ([]core.Utterance, error) {
	messages, err := p.client.QueryMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSourceUnavailable, err)
	}

	out := make([]core.Utterance, 0, len(messages))
	for _, m := range messages {
		if u, ok := p.client.toUtterance(m); ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// toUtterance maps a chat message to the engine's utterance shape. Origin
// is decided by authorship alone: anything the bot user wrote is tagged
// OriginEngine regardless of its text.
func (c *Client) toUtterance(m Message) (core.Utterance, bool) {
	if m.Type == "deleted" || m.Type == "system" {
		return core.Utterance{}, false
	}

	origin := core.OriginSpeaker
	if m.User.ID == c.userID {
		origin = core.OriginEngine
	}

	speaker := m.User.Name
	if speaker == "" {
		speaker = m.User.ID
	}
	if speaker == "" {
		speaker = core.UnknownSpeaker
	}

	return core.Utterance{
		ID:        m.ID,
		Speaker:   speaker,
		Text:      m.Text,
		Origin:    origin,
		Timestamp: m.CreatedAt,
	}, true
}
