package sinks

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/meetbot/pkg/conv"
)

// Synthesizer turns plain text into audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Publisher uploads an audio file into the meeting channel.
type Publisher interface {
	SendAttachment(ctx context.Context, name, contentType string, data []byte) error
}

// Audio speaks replies into the call: markdown is flattened to speech
// text, synthesized, and published as an audio attachment.
type Audio struct {
	synth     Synthesizer
	publisher Publisher
	now       func() time.Time
}

func NewAudio(synth Synthesizer, publisher Publisher) *Audio {
	return &Audio{synth: synth, publisher: publisher, now: time.Now}
}

func (a *Audio) Name() string {
	return "audio"
}

func (a *Audio) Deliver(ctx context.Context, text string) error {
	speech := conv.MarkdownToSpeechText([]byte(text))
	if speech == "" {
		return nil
	}

	audio, err := a.synth.Synthesize(ctx, speech)
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}

	name := fmt.Sprintf("reply-%d.mp3", a.now().UnixMilli())
	if err := a.publisher.SendAttachment(ctx, name, "audio/mpeg", audio); err != nil {
		return fmt.Errorf("publish audio: %w", err)
	}
	return nil
}
