package api

import (
	"net/http"

	"freshcart-be/internal/dashboard"
	"freshcart-be/internal/httpx"
)

type DashboardHandler struct {
	dashboard dashboard.Service
}

func NewDashboardHandler(dashboardSvc dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboardSvc}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.GetStats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, stats)
}
