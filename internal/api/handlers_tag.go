package api

import (
	"encoding/json"
	"net/http"

	"github.com/somnologia/somnologia/internal/api/respond"
	"github.com/somnologia/somnologia/internal/model"
	"github.com/somnologia/somnologia/internal/services"
)

// TagHandler provides HTTP transport for Tag operations.
type TagHandler struct {
	svc *services.TagService
}

func NewTagHandler(svc *services.TagService) *TagHandler {
	return &TagHandler{svc: svc}
}

// List GET /api/v1/tags/
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.List(r.Context())
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, tags)
}

// Create POST /api/v1/tags/
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var patch model.TagPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	t, err := h.svc.Create(r.Context(), patch)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, t)
}

// Get GET /api/v1/tags/{id}/
func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.WriteBadRequest(w, "invalid id")
		return
	}
	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, t)
}

// Update PUT /api/v1/tags/{id}/
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.WriteBadRequest(w, "invalid id")
		return
	}
	var patch model.TagPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	t, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, t)
}

// Delete DELETE /api/v1/tags/{id}/
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
