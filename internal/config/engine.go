package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/meetbot/pkg/log"
)

const (
	defaultPreamble = `You are an AI meeting assistant named %q.
You were just addressed in a video call meeting.`

	defaultInstruction = `Provide a helpful, concise response (2-3 sentences). Be friendly and professional.`
)

type EngineConfig struct {
	TriggerPhrase      string        `env:"AI_TRIGGER_PHRASE" envDefault:"hey assistant"`
	BotName            string        `env:"BOT_NAME" envDefault:"AI Assistant"`
	MaxContextMessages int           `env:"MAX_CONTEXT_MESSAGES" envDefault:"50"`
	ContextTailSize    int           `env:"CONTEXT_TAIL_SIZE" envDefault:"10"`
	MaxPromptTokens    int           `env:"MAX_PROMPT_TOKENS" envDefault:"4096"`
	PollInterval       time.Duration `env:"POLL_INTERVAL" envDefault:"2s"`
	PollBackoff        time.Duration `env:"POLL_BACKOFF" envDefault:"5s"`
	SummaryOnExit      bool          `env:"SUMMARY_ON_EXIT" envDefault:"true"`

	// Persona text is configuration so the voice can be swapped without
	// touching the prompt builder. Preamble is a format string taking the
	// bot name.
	Preamble    string `env:"PROMPT_PREAMBLE"`
	Instruction string `env:"PROMPT_INSTRUCTION"`
	Apology     string `env:"APOLOGY_TEXT" envDefault:"I'm having trouble processing that request right now."`
}

func NewEngineConfig(ctx context.Context) *EngineConfig {
	c := &EngineConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Engine config")
	}
	if c.Preamble == "" {
		c.Preamble = defaultPreamble
	}
	if c.Instruction == "" {
		c.Instruction = defaultInstruction
	}
	return c
}
