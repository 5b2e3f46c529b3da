package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/project-catalyst/catalyst-api/internal/models"
	"github.com/project-catalyst/catalyst-api/internal/validate"
)

// Analyzer is the capability the AI endpoints need from the provider
// client. A nil Analyzer means no credential was configured; the endpoints
// fail closed without touching the network.
type Analyzer interface {
	Analyze(ctx context.Context, description string) (*models.AIAnalysis, error)
	Chat(ctx context.Context, messages []models.ChatMessage) (string, error)
}

type AIHandler struct {
	ai Analyzer
}

func NewAIHandler(ai Analyzer) *AIHandler {
	return &AIHandler{ai: ai}
}

func (h *AIHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if h.ai == nil {
		writeError(w, http.StatusInternalServerError, "AI not configured")
		return
	}

	var req models.AnalyzeRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Analyze(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := h.ai.Analyze(r.Context(), req.Description)
	if err != nil {
		log.Printf("analyze: %v", err)
		writeError(w, http.StatusInternalServerError, "analyze failed")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.ai == nil {
		writeError(w, http.StatusInternalServerError, "AI not configured")
		return
	}

	var req models.ChatRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Chat(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.ai.Chat(r.Context(), req.Messages)
	if err != nil {
		log.Printf("chat: %v", err)
		writeError(w, http.StatusInternalServerError, "chat failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
