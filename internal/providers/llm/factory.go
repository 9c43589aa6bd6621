package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/meetbot/internal/config"
	"github.com/sandevgo/meetbot/internal/core"
	"github.com/sandevgo/meetbot/pkg/log"
)

// NewProvider creates the appropriate Completer based on configuration.
// Missing credentials for the selected provider abort startup.
func NewProvider(ctx context.Context, provider string, cfg *config.LLMConfig) (core.Completer, error) {
	log.FromCtx(ctx).Info().
		Str("provider", provider).
		Msg("starting completion provider")

	switch provider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
		return NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Temperature, cfg.MaxTokens), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:     "https://api.openai.com",
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.Model,
			AuthHeader:  "Authorization",
			AuthPrefix:  "Bearer ",
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		}), nil
	case "openrouter":
		if cfg.OpenRouterAPIKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY is required for the openrouter provider")
		}
		return NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    "https://openrouter.ai/api",
			APIKey:     cfg.OpenRouterAPIKey,
			Model:      cfg.Model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
			ExtraHeaders: map[string]string{
				"HTTP-Referer": core.RepositoryURL,
				"X-Title":      core.BotName,
			},
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		}), nil
	case "custom":
		if cfg.CustomBaseURL == "" {
			return nil, fmt.Errorf("CUSTOM_OPENAI_BASE_URL is required for the custom provider")
		}
		return NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:     cfg.CustomBaseURL,
			APIKey:      cfg.CustomAPIKey,
			Model:       cfg.Model,
			AuthHeader:  "Authorization",
			AuthPrefix:  "Bearer ",
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
