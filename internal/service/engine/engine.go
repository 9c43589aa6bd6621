package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/meetbot/internal/config"
	"github.com/sandevgo/meetbot/internal/core"
	"github.com/sandevgo/meetbot/internal/service/command"
	"github.com/sandevgo/meetbot/internal/service/memory"
	"github.com/sandevgo/meetbot/internal/service/summary"
	"github.com/sandevgo/meetbot/pkg/log"
)

// Engine runs the ingestion loop: pull or await the next batch, dedup,
// update the context window, detect activations and resolve them as a
// sequential continuation. At most one completion request is in flight;
// a slow completion delays subsequent ingestion.
type Engine struct {
	cfg        *config.EngineConfig
	window     *memory.Window
	cursor     *Cursor
	detector   *Detector
	prompts    *memory.PromptBuilder
	completer  core.Completer
	router     *Router
	summarizer *summary.Summarizer
	commands   *command.Router
	poller     core.Poller
	subscriber core.Subscriber
	store      core.TranscriptStore

	done chan struct{}
}

type Options struct {
	Window     *memory.Window
	Prompts    *memory.PromptBuilder
	Completer  core.Completer
	Router     *Router
	Summarizer *summary.Summarizer
	Commands   *command.Router
	Poller     core.Poller
	Subscriber core.Subscriber
	Store      core.TranscriptStore
}

func New(cfg *config.EngineConfig, opts Options) *Engine {
	return &Engine{
		cfg:        cfg,
		window:     opts.Window,
		cursor:     NewCursor(),
		detector:   NewDetector(cfg.TriggerPhrase),
		prompts:    opts.Prompts,
		completer:  opts.Completer,
		router:     opts.Router,
		summarizer: opts.Summarizer,
		commands:   opts.Commands,
		poller:     opts.Poller,
		subscriber: opts.Subscriber,
		store:      opts.Store,
		done:       make(chan struct{}),
	}
}

// Start runs the ingestion loop until the context is cancelled. Source
// errors are never fatal: the loop backs off and keeps going.
func (e *Engine) Start(ctx context.Context) error {
	defer close(e.done)

	logger := log.FromCtx(ctx)
	logger.Info().
		Str("trigger", e.cfg.TriggerPhrase).
		Msg("engine listening")

	if e.subscriber != nil {
		return e.runSubscribe(ctx)
	}
	return e.runPoll(ctx)
}

func (e *Engine) runPoll(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	timer := time.NewTimer(e.cfg.PollInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		batch, err := e.poller.Poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Warn().Err(err).
				Dur("backoff", e.cfg.PollBackoff).
				Msg("source poll failed, backing off")
			timer.Reset(e.cfg.PollBackoff)
			continue
		}

		for _, u := range e.cursor.Observe(batch) {
			e.process(ctx, u)
		}
		timer.Reset(e.cfg.PollInterval)
	}
}

func (e *Engine) runSubscribe(ctx context.Context) error {
	ch, err := e.subscriber.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to utterance source: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-ch:
			if !ok {
				return nil
			}
			// Each delivered event is a one-element batch
			for _, v := range e.cursor.Observe([]core.Utterance{u}) {
				e.process(ctx, v)
			}
		}
	}
}

// process resolves a single deduplicated utterance: window update,
// archive, slash commands, then trigger detection and response.
func (e *Engine) process(ctx context.Context, u core.Utterance) {
	logger := log.FromCtx(ctx)
	logger.Debug().Str("speaker", u.Speaker).Str("text", u.Text).Msg("utterance")

	e.window.Append(u)

	if e.store != nil {
		if err := e.store.AddUtterance(ctx, u); err != nil {
			logger.Warn().Err(err).Msg("failed to archive utterance")
		}
	}

	if e.commands != nil {
		if resp, ok := e.commands.Execute(ctx, u.Text); ok {
			e.router.Deliver(ctx, resp, nil)
			return
		}
	}

	if !e.detector.IsActivated(u) {
		return
	}

	logger.Info().Str("speaker", u.Speaker).Msg("trigger detected, generating reply")
	prompt := e.prompts.Build(u, e.window)
	reply, err := e.completer.Complete(ctx, prompt)
	e.router.Deliver(ctx, reply, err)
}

// Shutdown waits for the loop to drain, then optionally posts a final
// meeting summary before the process exits.
func (e *Engine) Shutdown(ctx context.Context) error {
	select {
	case <-e.done:
	case <-time.After(10 * time.Second):
		log.FromCtx(ctx).Warn().Msg("engine loop did not drain in time")
	}

	if !e.cfg.SummaryOnExit || e.summarizer == nil || e.window.Len() == 0 {
		return nil
	}

	// The signal context is already cancelled at this point; give the
	// final summary its own deadline.
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	logger := log.FromCtx(ctx)
	logger.Info().Msg("generating final meeting summary")

	text, err := e.summarizer.Summarize(sctx)
	if err != nil {
		logger.Error().Err(err).Msg("final summary failed")
		return nil
	}

	e.router.Deliver(sctx, "Meeting Summary\n\n"+text, nil)
	if e.store != nil {
		if err := e.store.AddSummary(sctx, text); err != nil {
			logger.Warn().Err(err).Msg("failed to archive summary")
		}
	}
	return nil
}
