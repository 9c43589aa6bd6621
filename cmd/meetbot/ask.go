package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sandevgo/meetbot/internal/config"
	"github.com/sandevgo/meetbot/internal/core"
	"github.com/sandevgo/meetbot/internal/providers/llm"
	"github.com/sandevgo/meetbot/internal/service/memory"
	"github.com/sandevgo/meetbot/internal/service/ui"
	"github.com/sandevgo/meetbot/pkg/log"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant a single question",
	Long:  `Sends one question through the prompt builder and the configured completion provider, without joining a meeting.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		appCfg := config.NewAppConfig(ctx)
		engineCfg := config.NewEngineConfig(ctx)

		completer, err := llm.NewProvider(ctx, appCfg.LLMProvider, config.NewLLMConfig(ctx))
		if err != nil {
			return err
		}

		speaker, text := core.ParseTranscriptLine(strings.Join(args, " "))
		activating := core.Utterance{
			ID:        uuid.NewString(),
			Speaker:   speaker,
			Text:      text,
			Origin:    core.OriginSpeaker,
			Timestamp: time.Now(),
		}

		prompt := memory.NewPromptBuilder(engineCfg).Render(activating, nil)

		log.FromCtx(ctx).Debug().Str("prompt", prompt).Msg("one-shot prompt")
		reply, err := completer.Complete(ctx, prompt)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", ui.BotStyle.Render(engineCfg.BotName+":"), reply)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
