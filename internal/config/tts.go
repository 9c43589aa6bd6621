package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/meetbot/pkg/log"
)

type TTSConfig struct {
	APIKey       string `env:"TTS_API_KEY,required,notEmpty"`
	BaseURL      string `env:"TTS_BASE_URL" envDefault:"https://texttospeech.googleapis.com"`
	Voice        string `env:"TTS_VOICE" envDefault:"en-US-Neural2-C"`
	LanguageCode string `env:"TTS_LANGUAGE" envDefault:"en-US"`
}

func NewTTSConfig(ctx context.Context) *TTSConfig {
	c := &TTSConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse TTS config")
	}
	return c
}
