package api

import (
	"encoding/json"
	"net/http"

	"github.com/somnologia/somnologia/internal/api/respond"
	"github.com/somnologia/somnologia/internal/services"
)

// InterpretHandler is the HTTP surface of the interpretation gateway.
type InterpretHandler struct {
	svc *services.InterpretService
}

func NewInterpretHandler(svc *services.InterpretService) *InterpretHandler {
	return &InterpretHandler{svc: svc}
}

// Interpret POST /api/v1/interpret/
// Body: {"description": "...", "dreamId": 42}; dreamId is optional and, when
// present, receives the interpretation.
func (h *InterpretHandler) Interpret(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
		DreamID     *int64 `json:"dreamId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	res, err := h.svc.Interpret(r.Context(), req.Description, req.DreamID)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}
