package sinks

import (
	"context"
	"fmt"
)

// Messenger posts text into the meeting chat channel.
type Messenger interface {
	SendMessage(ctx context.Context, text string) error
}

// Chat delivers replies to the chat channel bound to the call.
type Chat struct {
	messenger Messenger
}

func NewChat(messenger Messenger) *Chat {
	return &Chat{messenger: messenger}
}

func (c *Chat) Name() string {
	return "chat"
}

func (c *Chat) Deliver(ctx context.Context, text string) error {
	if err := c.messenger.SendMessage(ctx, text); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
