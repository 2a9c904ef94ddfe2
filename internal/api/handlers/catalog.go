package handlers

import (
	"net/http"
	"strings"

	"logistics-route-service/internal/api/dto"
	"logistics-route-service/internal/domain"
	"logistics-route-service/internal/ports"
)

// CatalogHandler exposes read-only location and vehicle endpoints.
type CatalogHandler struct {
	Locations ports.LocationRepository
	Vehicles  ports.VehicleRepository
}

func (h *CatalogHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := h.Locations.ListLocations(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	depotsOnly := r.URL.Query().Get("depot") == "true"
	res := dto.ListLocationsResponse{Locations: make([]dto.LocationResponse, 0, len(locs))}
	for _, l := range locs {
		if depotsOnly && !l.IsDepot {
			continue
		}
		res.Locations = append(res.Locations, dto.NewLocationResponse(l))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// ListVehicles accepts an optional ?status= filter.
func (h *CatalogHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	var status domain.VehicleStatus
	if s := strings.TrimSpace(r.URL.Query().Get("status")); s != "" {
		st, err := domain.ParseVehicleStatus(s)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
		status = st
	}

	vehicles, err := h.Vehicles.ListVehicles(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	res := dto.ListVehiclesResponse{Vehicles: make([]dto.VehicleResponse, 0, len(vehicles))}
	for _, v := range vehicles {
		if status != "" && v.Status != status {
			continue
		}
		res.Vehicles = append(res.Vehicles, dto.NewVehicleResponse(v))
	}

	writeJSON(w, r, http.StatusOK, res)
}
