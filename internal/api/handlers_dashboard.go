package api

import (
	"net/http"

	"github.com/somnologia/somnologia/internal/api/respond"
	"github.com/somnologia/somnologia/internal/services"
)

// DashboardHandler serves the aggregated read-only view.
type DashboardHandler struct {
	svc *services.DashboardService
}

func NewDashboardHandler(svc *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Get GET /api/v1/dashboard/
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.GetDashboard(r.Context())
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, data)
}
