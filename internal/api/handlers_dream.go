package api

import (
	"encoding/json"
	"net/http"

	"github.com/somnologia/somnologia/internal/api/respond"
	"github.com/somnologia/somnologia/internal/model"
	"github.com/somnologia/somnologia/internal/services"
)

// DreamHandler provides HTTP transport for Dream operations.
type DreamHandler struct {
	svc *services.DreamService
}

func NewDreamHandler(svc *services.DreamService) *DreamHandler {
	return &DreamHandler{svc: svc}
}

// List GET /api/v1/dreams/
func (h *DreamHandler) List(w http.ResponseWriter, r *http.Request) {
	dreams, err := h.svc.List(r.Context())
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, dreams)
}

// Create POST /api/v1/dreams/
func (h *DreamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var patch model.DreamPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	d, err := h.svc.Create(r.Context(), patch)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, d)
}

// Get GET /api/v1/dreams/{id}/
func (h *DreamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.WriteBadRequest(w, "invalid id")
		return
	}
	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}

// Update PUT /api/v1/dreams/{id}/
func (h *DreamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.WriteBadRequest(w, "invalid id")
		return
	}
	var patch model.DreamPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	d, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}

// Delete DELETE /api/v1/dreams/{id}/
func (h *DreamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.WriteBadRequest(w, "invalid id")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.DomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
