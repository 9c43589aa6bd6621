package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/meetbot/pkg/log"
)

type HTTPConfig struct {
	Addr string `env:"HTTP_ADDR" envDefault:":5000"`
}

func NewHTTPConfig(ctx context.Context) *HTTPConfig {
	c := &HTTPConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse HTTP config")
	}
	return c
}
