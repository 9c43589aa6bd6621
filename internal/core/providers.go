package core

import "context"

// Completer is the generative-text backend. Implementations map every
// failure mode (transport error, bad payload, empty output) to an error
// wrapping ErrCompletionFailed.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Poller is a pull-mode utterance source: each call returns the source's
// recent messages in chronological order, already tagged with Origin.
type Poller interface {
	Poll(ctx context.Context) ([]Utterance, error)
}

// Subscriber is a push-mode utterance source. The returned channel is
// closed when the subscription ends; the engine treats each delivery as a
// one-element batch.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan Utterance, error)
}

// Sink is an output channel for engine replies. Sinks fail independently;
// the response router logs and continues.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, text string) error
}

// TranscriptStore archives processed utterances and summaries. Best
// effort: the ingestion loop never depends on it.
type TranscriptStore interface {
	AddUtterance(ctx context.Context, u Utterance) error
	AddSummary(ctx context.Context, text string) error
}

// Command is an in-chat slash command (e.g. /summary).
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, args []string) (string, error)
}
