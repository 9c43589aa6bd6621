package engine

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/meetbot/internal/config"
	"github.com/sandevgo/meetbot/internal/core"
	"github.com/sandevgo/meetbot/internal/service/memory"
	"github.com/sandevgo/meetbot/pkg/log"
)

// Router records exactly one engine reply per activation and fans it out
// to the configured sinks. Sink failures are isolated: logged, never
// propagated to the ingestion loop.
type Router struct {
	window  *memory.Window
	sinks   []core.Sink
	store   core.TranscriptStore
	botName string
	apology string
}

func NewRouter(cfg *config.EngineConfig, window *memory.Window, sinks []core.Sink, store core.TranscriptStore) *Router {
	return &Router{
		window:  window,
		sinks:   sinks,
		store:   store,
		botName: cfg.BotName,
		apology: cfg.Apology,
	}
}

// Deliver routes a generated reply (or its failure) back into the context
// window and out to the sinks. On failure or empty output the fixed
// apology is substituted, so participants always get an acknowledgment
// and the recorded context never re-triggers on silence.
func (r *Router) Deliver(ctx context.Context, reply string, genErr error) {
	logger := log.FromCtx(ctx)

	text := strings.TrimSpace(reply)
	if genErr != nil || text == "" {
		if genErr != nil {
			logger.Error().Err(genErr).Msg("completion failed, substituting apology")
		}
		text = r.apology
	}

	u := core.Utterance{
		ID:        uuid.NewString(),
		Speaker:   r.botName,
		Text:      text,
		Origin:    core.OriginEngine,
		Timestamp: time.Now(),
	}

	// The window append happens-before any sink dispatch, so a concurrent
	// summarizer read never observes a dispatched-but-unrecorded reply.
	r.window.Append(u)

	if r.store != nil {
		if err := r.store.AddUtterance(ctx, u); err != nil {
			logger.Warn().Err(err).Msg("failed to archive reply")
		}
	}

	for _, s := range r.sinks {
		if err := s.Deliver(ctx, text); err != nil {
			serr := &core.SinkError{Sink: s.Name(), Err: err}
			logger.Error().Err(serr).Msg("sink delivery failed")
		}
	}
}
