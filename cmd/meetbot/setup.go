package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sandevgo/meetbot/internal/config"
	"github.com/sandevgo/meetbot/internal/core"
	"github.com/sandevgo/meetbot/internal/providers/llm"
	"github.com/sandevgo/meetbot/internal/providers/stream"
	"github.com/sandevgo/meetbot/internal/providers/tts"
	"github.com/sandevgo/meetbot/internal/service/command"
	"github.com/sandevgo/meetbot/internal/service/engine"
	"github.com/sandevgo/meetbot/internal/service/memory"
	"github.com/sandevgo/meetbot/internal/service/summary"
	"github.com/sandevgo/meetbot/internal/sinks"
	"github.com/sandevgo/meetbot/internal/storage/sqlite"
	"github.com/sandevgo/meetbot/internal/transport/console"
	"github.com/sandevgo/meetbot/internal/transport/httpapi"
	"github.com/sandevgo/meetbot/pkg/log"
	"github.com/sandevgo/meetbot/pkg/srv"
)

func NewServices(ctx context.Context, stop context.CancelFunc) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	engineCfg := config.NewEngineConfig(ctx)

	// 2. Transcript archive (optional)
	var store core.TranscriptStore
	if appCfg.EnableArchive {
		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize storage")
		}
		services = append(services, srv.NewCleanup(db.Close))
		store = sqlite.NewTranscript(db)
	}

	// 3. Completion gateway
	llmCfg := config.NewLLMConfig(ctx)
	completer, err := llm.NewProvider(ctx, appCfg.LLMProvider, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Context window + prompt builder
	window := memory.NewWindow(engineCfg.MaxContextMessages)
	prompts := memory.NewPromptBuilder(engineCfg)
	summarizer := summary.NewSummarizer(window, completer)

	// 5. Chat backend, needed for the meeting source and the chat sinks.
	// Console runs stay fully local and never touch it.
	var chatClient *stream.Client
	if !appCfg.IsConsoleMode() {
		streamCfg := config.NewStreamConfig(ctx)
		chatClient, err = stream.NewClient(streamCfg, engineCfg.BotName)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize chat client")
		}
		if err := chatClient.Connect(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to chat backend")
		}

		// 6. Utterance source
		opts := engine.Options{}
		switch appCfg.SourceMode {
		case "subscribe":
			opts.Subscriber = stream.NewEventSource(chatClient, streamCfg)
		default:
			opts.Poller = stream.NewPoller(chatClient)
		}
		return buildEngine(ctx, services, appCfg, engineCfg, opts, window, prompts, completer, summarizer, chatClient, store)
	}

	// Console-only run: stdin is the source; 'exit' ends the session
	rl, err := console.NewReadLine(appCfg, stop)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize console transport")
	}
	services = append(services, srv.NewCleanup(rl.Close))

	opts := engine.Options{Subscriber: rl}
	return buildEngine(ctx, services, appCfg, engineCfg, opts, window, prompts, completer, summarizer, nil, store)
}

func buildEngine(
	ctx context.Context,
	services []srv.Service,
	appCfg *config.AppConfig,
	engineCfg *config.EngineConfig,
	opts engine.Options,
	window *memory.Window,
	prompts *memory.PromptBuilder,
	completer core.Completer,
	summarizer *summary.Summarizer,
	chatClient *stream.Client,
	store core.TranscriptStore,
) []srv.Service {
	logger := log.FromCtx(ctx)

	// Output sinks
	outputs := initSinks(ctx, appCfg, engineCfg, chatClient)
	if len(outputs) == 0 {
		logger.Fatal().Msg("no output sinks enabled")
	}

	// Slash commands
	commands := command.New([]core.Command{command.NewSummaryCommand(summarizer)})
	commands.Register(command.NewHelpCommand(commands))

	router := engine.NewRouter(engineCfg, window, outputs, store)

	opts.Window = window
	opts.Prompts = prompts
	opts.Completer = completer
	opts.Router = router
	opts.Summarizer = summarizer
	opts.Commands = commands
	opts.Store = store

	services = append(services, engine.New(engineCfg, opts))

	// HTTP surface
	if appCfg.EnableHTTP {
		httpCfg := config.NewHTTPConfig(ctx)
		services = append(services, httpapi.NewServer(httpCfg, engineCfg, window, prompts, completer, summarizer))
	}

	return services
}

func initSinks(ctx context.Context, appCfg *config.AppConfig, engineCfg *config.EngineConfig, chatClient *stream.Client) []core.Sink {
	logger := log.FromCtx(ctx)
	var outputs []core.Sink

	// A local console run replies to the terminal only.
	if appCfg.IsConsoleMode() {
		return []core.Sink{sinks.NewConsole(engineCfg.BotName)}
	}

	if appCfg.SinkChat {
		if chatClient == nil {
			logger.Fatal().Msg("chat sink enabled without a chat backend")
		}
		outputs = append(outputs, sinks.NewChat(chatClient))
	}

	if appCfg.SinkConsole {
		outputs = append(outputs, sinks.NewConsole(engineCfg.BotName))
	}

	if appCfg.SinkAudio {
		if chatClient == nil {
			logger.Fatal().Msg("audio sink enabled without a chat backend")
		}
		ttsCfg := config.NewTTSConfig(ctx)
		outputs = append(outputs, sinks.NewAudio(tts.NewGoogle(ttsCfg), chatClient))
	}

	return outputs
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
