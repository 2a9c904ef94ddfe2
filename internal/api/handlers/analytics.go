package handlers

import (
	"net/http"

	"logistics-route-service/internal/api/dto"
	"logistics-route-service/internal/services"
)

type AnalyticsHandler struct {
	Service *services.AnalyticsService
}

func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.Snapshot(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewAnalyticsResponse(a))
}
