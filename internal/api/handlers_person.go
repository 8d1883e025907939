package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/somnologia/somnologia/internal/api/respond"
	"github.com/somnologia/somnologia/internal/model"
	"github.com/somnologia/somnologia/internal/services"
)

// PersonHandler provides HTTP transport for Person operations.
type PersonHandler struct {
	svc *services.PersonService
}

func NewPersonHandler(svc *services.PersonService) *PersonHandler {
	return &PersonHandler{svc: svc}
}

// pathID extracts the numeric {id} route variable.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// List GET /api/v1/persons/
func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	persons, err := h.svc.List(r.Context())
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, persons)
}

// Create POST /api/v1/persons/
func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var patch model.PersonPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	p, err := h.svc.Create(r.Context(), patch)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, p)
}

// Get GET /api/v1/persons/{id}/
func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.WriteBadRequest(w, "invalid id")
		return
	}
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

// Update PUT /api/v1/persons/{id}/
func (h *PersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.WriteBadRequest(w, "invalid id")
		return
	}
	var patch model.PersonPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	p, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

// Delete DELETE /api/v1/persons/{id}/
func (h *PersonHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
