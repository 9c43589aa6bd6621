package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/sandevgo/meetbot/internal/config"
	"github.com/sandevgo/meetbot/internal/core"
	"github.com/sandevgo/meetbot/internal/service/memory"
	"github.com/sandevgo/meetbot/pkg/log"
)

// Summarizer produces a summary of the live meeting context.
type Summarizer interface {
	Summarize(ctx context.Context) (string, error)
}

// Server exposes the assistant over HTTP: health, one-shot assistant
// calls against the shared context window, and on-demand summaries.
type Server struct {
	addr       string
	botName    string
	window     *memory.Window
	prompts    *memory.PromptBuilder
	completer  core.Completer
	summarizer Summarizer

	httpServer *http.Server
}

func NewServer(cfg *config.HTTPConfig, engineCfg *config.EngineConfig, window *memory.Window, prompts *memory.PromptBuilder, completer core.Completer, summarizer Summarizer) *Server {
	return &Server{
		addr:       cfg.Addr,
		botName:    engineCfg.BotName,
		window:     window,
		prompts:    prompts,
		completer:  completer,
		summarizer: summarizer,
	}
}

func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.FromCtx(ctx).Info().Str("addr", s.addr).Msg("http api listening")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// Routes builds the router. Exposed for handler tests.
func (s *Server) Routes(ctx context.Context) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger(ctx))

	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/assistant", s.handleAssistant).Methods(http.MethodPost)
	r.HandleFunc("/api/meeting/summary", s.handleSummary).Methods(http.MethodGet)
	return r
}

// requestLogger threads the app logger into every request context.
func requestLogger(ctx context.Context) mux.MiddlewareFunc {
	logger := log.FromCtx(ctx)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqCtx := logger.WithContext(r.Context())
			next.ServeHTTP(w, r.WithContext(reqCtx))
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("elapsed", time.Since(start)).
				Msg("http request")
		})
	}
}
