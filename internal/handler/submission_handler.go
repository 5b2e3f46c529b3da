package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/project-catalyst/catalyst-api/internal/models"
	"github.com/project-catalyst/catalyst-api/internal/validate"
)

// Submitter runs the submission pipeline: persist the row, detach the
// notifications.
type Submitter interface {
	Submit(ctx context.Context, req *models.SubmissionRequest) error
}

type SubmissionHandler struct {
	svc        Submitter
	production bool
}

func NewSubmissionHandler(svc Submitter, production bool) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, production: production}
}

func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.SubmissionRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Submission(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Submit(r.Context(), &req); err != nil {
		log.Printf("submit: %v", err)
		msg := err.Error()
		if h.production {
			// Raw upstream detail stays in the logs.
			msg = "submit failed"
		}
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
