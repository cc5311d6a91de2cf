package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

type WaitlistJoiner interface {
	Execute(ctx context.Context, input usecase.JoinWaitlistInput) (*usecase.JoinWaitlistOutput, error)
}

type WaitlistHandler struct {
	joinWaitlist WaitlistJoiner
}

func NewWaitlistHandler(joinWaitlist WaitlistJoiner) *WaitlistHandler {
	return &WaitlistHandler{joinWaitlist: joinWaitlist}
}

type WaitlistResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (h *WaitlistHandler) Join(w http.ResponseWriter, r *http.Request) {
	var input usecase.JoinWaitlistInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, WaitlistResponse{Error: "Email required"})
		return
	}

	if _, err := h.joinWaitlist.Execute(r.Context(), input); err != nil {
		if errors.Is(err, entity.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, WaitlistResponse{Error: "Email required"})
			return
		}
		writeJSON(w, http.StatusServiceUnavailable, WaitlistResponse{Error: "waitlist unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, WaitlistResponse{Success: true})
}
