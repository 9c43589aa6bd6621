package core

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable marks a failed poll or subscribe. Recovered by
	// backoff inside the ingestion loop, never fatal.
	ErrSourceUnavailable = errors.New("utterance source unavailable")

	// ErrCompletionFailed covers every completion backend failure mode.
	// The router substitutes the configured apology reply.
	ErrCompletionFailed = errors.New("completion failed")
)

// SinkError reports a single sink's delivery failure. Other sinks are
// unaffected and the failure never reaches the ingestion loop.
type SinkError struct {
	Sink string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink %s: %v", e.Sink, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}
