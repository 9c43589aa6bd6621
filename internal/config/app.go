package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/sandevgo/meetbot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"MEETBOT_RUNTIME_PATH" envDefault:".meetbot"`

	// Allow selecting the completion provider
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"gemini"`

	// Utterance source: "poll" queries the channel on an interval,
	// "subscribe" consumes the event stream, "console" reads stdin.
	SourceMode string `env:"SOURCE_MODE" envDefault:"poll"`

	// Transport Flags
	EnableHTTP    bool `env:"ENABLE_HTTP" envDefault:"false"`
	EnableConsole bool `env:"ENABLE_CONSOLE" envDefault:"false"`
	EnableArchive bool `env:"ENABLE_ARCHIVE" envDefault:"false"`

	// Output sinks
	SinkChat    bool `env:"SINK_CHAT" envDefault:"true"`
	SinkConsole bool `env:"SINK_CONSOLE" envDefault:"false"`
	SinkAudio   bool `env:"SINK_AUDIO" envDefault:"false"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "meetbot.db")
}

func (c AppConfig) IsConsoleMode() bool {
	return c.SourceMode == "console" || c.EnableConsole
}
