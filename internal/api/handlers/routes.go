package handlers

import (
	"net/http"

	"logistics-route-service/internal/api/dto"
	apperror "logistics-route-service/internal/errors"
	"logistics-route-service/internal/services"
)

type RouteHandler struct {
	Planner *services.RoutePlanner
}

// Optimize plans one route for the requested destinations.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}

	rec, err := h.Planner.Plan(r.Context(), services.OptimizeRequest{
		Start:        req.Start,
		Destinations: req.Destinations,
		VehicleID:    req.VehicleID,
		Algorithm:    req.Algorithm,
		PayloadKg:    req.PayloadKg,
		Seed:         req.Seed,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRouteResponse(rec))
}

// Fleet splits the destinations across all available vehicles.
func (h *RouteHandler) Fleet(w http.ResponseWriter, r *http.Request) {
	var req dto.FleetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}

	recs, err := h.Planner.PlanFleet(r.Context(), services.FleetRequest{
		Start:        req.Start,
		Destinations: req.Destinations,
		Algorithm:    req.Algorithm,
		Seed:         req.Seed,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewListRoutesResponse(recs))
}

// List returns recorded routes, newest first. ?limit= defaults to 50.
func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 50)
	if err == nil && limit < 0 {
		err = apperror.NewInvalidRequestError("limit must not be negative, got %d", limit)
	}
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	recs, err := h.Planner.List(r.Context(), limit)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewListRoutesResponse(recs))
}

func (h *RouteHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Planner.Stats(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRouteStatsResponse(stats))
}
