package services

import (
	"context"

	"github.com/somnologia/somnologia/internal/model"
	"github.com/somnologia/somnologia/internal/store"
)

// DefaultRecentDreams is how many dreams the dashboard's recent list carries
// unless configured otherwise.
const DefaultRecentDreams = 3

type DashboardService struct {
	store  store.Store
	recent int
}

func NewDashboardService(s store.Store, recent int) *DashboardService {
	if recent <= 0 {
		recent = DefaultRecentDreams
	}
	return &DashboardService{store: s, recent: recent}
}

// GetDashboard returns the aggregated view; purely derived from store state.
func (s *DashboardService) GetDashboard(ctx context.Context) (*model.DashboardData, error) {
	return s.store.Dashboard().Snapshot(ctx, s.recent)
}
