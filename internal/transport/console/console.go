package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/sandevgo/meetbot/internal/config"
	"github.com/sandevgo/meetbot/internal/core"
	"github.com/sandevgo/meetbot/pkg/log"
)

// ReadLine is an interactive stdin source for local runs. Each input line
// is read as "Name: message" and fed to the engine as a push utterance,
// so the whole pipeline behaves the same as with a live meeting. Typing
// 'exit' ends the session through the onExit hook, which lets the exit
// summary run just like a signal would.
type ReadLine struct {
	cfg    *config.AppConfig
	rl     *readline.Instance
	out    chan core.Utterance
	next   func() (string, error)
	onExit func()
}

func NewReadLine(cfg *config.AppConfig, onExit func()) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:    cfg,
		rl:     rl,
		out:    make(chan core.Utterance),
		next:   rl.Readline,
		onExit: onExit,
	}, nil
}

// Subscribe starts the read loop. The channel closes when the user exits
// or the context ends.
func (r *ReadLine) Subscribe(ctx context.Context) (<-chan core.Utterance, error) {
	go r.run(ctx)
	return r.out, nil
}

func (r *ReadLine) run(ctx context.Context) {
	defer func() {
		if r.onExit != nil {
			r.onExit()
		}
	}()
	defer close(r.out)

	logger := log.FromCtx(ctx)
	logger.Info().Msg("console transcript started. Type 'Name: message', or 'exit' to quit.")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := r.next()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return
				}
				continue
			} else if err == io.EOF {
				return
			}
			logger.Error().Err(err).Msg("console read failed")
			return
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return
		}
		if line == "" {
			continue
		}

		speaker, text := core.ParseTranscriptLine(line)
		u := core.Utterance{
			ID:        uuid.NewString(),
			Speaker:   speaker,
			Text:      text,
			Origin:    core.OriginSpeaker,
			Timestamp: time.Now(),
		}

		select {
		case r.out <- u:
		case <-ctx.Done():
			return
		}
	}
}

func (r *ReadLine) Close() error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
