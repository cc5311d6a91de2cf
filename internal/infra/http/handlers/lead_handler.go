package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

const (
	msgLeadCaptured = "Lead captured, stored, and emails sent successfully."
	msgLeadStored   = "Lead captured and stored."
)

type LeadCapturer interface {
	Execute(ctx context.Context, input usecase.CaptureLeadInput) (*usecase.CaptureLeadOutput, error)
}

type LeadHandler struct {
	captureLead LeadCapturer
}

func NewLeadHandler(captureLead LeadCapturer) *LeadHandler {
	return &LeadHandler{captureLead: captureLead}
}

type CaptureLeadResponse struct {
	OK          bool                    `json:"ok"`
	Result      *entity.ReconcileResult `json:"result,omitempty"`
	Score       int                     `json:"score"`
	Temperature entity.Temperature      `json:"temperature,omitempty"`
	Message     string                  `json:"message,omitempty"`
	Error       string                  `json:"error,omitempty"`
}

func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	var input usecase.CaptureLeadInput
	// An empty body is an empty submission; validation reports the missing email.
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{Error: "invalid JSON body"})
		return
	}

	output, err := h.captureLead.Execute(r.Context(), input)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, entity.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, CaptureLeadResponse{Error: err.Error()})
		return
	}

	message := msgLeadCaptured
	if output.Degraded() {
		message = msgLeadStored
	}

	writeJSON(w, http.StatusOK, CaptureLeadResponse{
		OK:          true,
		Result:      &output.Result,
		Score:       output.Score,
		Temperature: output.Temperature,
		Message:     message,
	})
}

// Root answers the platform's liveness probe.
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Lead intake API running"})
}
