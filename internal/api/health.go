package api

import (
	"net/http"

	"github.com/somnologia/somnologia/internal/api/respond"
	"github.com/somnologia/somnologia/internal/health"
)

// HealthHandler serves liveness and store health probes.
type HealthHandler struct {
	store health.HealthPinger
}

func NewHealthHandler(store health.HealthPinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// CheckHealth GET /api/health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CheckStoreHealth GET /api/health/db
func (h *HealthHandler) CheckStoreHealth(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "unknown"})
		return
	}
	if err := h.store.HealthPing(r.Context()); err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "service_unavailable", err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
