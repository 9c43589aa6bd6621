package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandevgo/meetbot/internal/core"
	"github.com/sandevgo/meetbot/pkg/log"
)

type assistantRequest struct {
	Message string   `json:"message"`
	Context []string `json:"context,omitempty"`
}

type assistantResponse struct {
	Response string `json:"response"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAssistant answers a single question against the live context
// window. When the caller supplies its own context lines they replace the
// window tail for this request; the exchange is appended to the shared
// window either way.
func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	speaker, text := core.ParseTranscriptLine(req.Message)
	activating := core.Utterance{
		ID:        uuid.NewString(),
		Speaker:   speaker,
		Text:      text,
		Origin:    core.OriginSpeaker,
		Timestamp: time.Now(),
	}

	var prompt string
	if len(req.Context) > 0 {
		tail := make([]core.Utterance, 0, len(req.Context))
		for _, line := range req.Context {
			sp, tx := core.ParseTranscriptLine(line)
			tail = append(tail, core.Utterance{Speaker: sp, Text: tx, Origin: core.OriginSpeaker})
		}
		prompt = s.prompts.Render(activating, tail)
	} else {
		prompt = s.prompts.Build(activating, s.window)
	}

	reply, err := s.completer.Complete(r.Context(), prompt)
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("assistant completion failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "completion failed"})
		return
	}

	s.window.Append(activating)
	s.window.Append(core.Utterance{
		ID:        uuid.NewString(),
		Speaker:   s.botName,
		Text:      reply,
		Origin:    core.OriginEngine,
		Timestamp: time.Now(),
	})

	writeJSON(w, http.StatusOK, assistantResponse{Response: reply})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	text, err := s.summarizer.Summarize(r.Context())
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("summary generation failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "summary generation failed"})
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{Summary: text})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
