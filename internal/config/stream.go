package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/meetbot/pkg/log"
)

type StreamConfig struct {
	APIKey    string `env:"STREAM_API_KEY,required,notEmpty"`
	APISecret string `env:"STREAM_API_SECRET,required,notEmpty"`

	CallID      string `env:"CALL_ID" envDefault:"demo-meeting"`
	UserID      string `env:"USER_ID" envDefault:"ai-assistant-bot"`
	ChannelType string `env:"STREAM_CHANNEL_TYPE" envDefault:"messaging"`

	BaseURL string `env:"STREAM_BASE_URL" envDefault:"https://chat.stream-io-api.com"`
	WSURL   string `env:"STREAM_WS_URL" envDefault:"wss://chat.stream-io-api.com/connect"`

	FetchLimit int `env:"STREAM_FETCH_LIMIT" envDefault:"25"`
}

func NewStreamConfig(ctx context.Context) *StreamConfig {
	c := &StreamConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Stream config")
	}
	return c
}

// ChannelID names the chat channel bound to the call.
func (c StreamConfig) ChannelID() string {
	return "call-" + c.CallID
}
