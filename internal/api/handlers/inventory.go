package handlers

import (
	"net/http"
	"strings"

	"logistics-route-service/internal/api/dto"
	"logistics-route-service/internal/domain"
	"logistics-route-service/internal/services"
)

const (
	defaultForecastDays = 7
	defaultTurnoverDays = 30
)

type InventoryHandler struct {
	Service *services.InventoryService
}

// List accepts optional ?warehouse=, ?category= and ?status= filters.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := services.InventoryFilter{
		Warehouse: strings.TrimSpace(q.Get("warehouse")),
		Category:  strings.TrimSpace(q.Get("category")),
	}
	switch st := domain.StockStatus(strings.TrimSpace(q.Get("status"))); st {
	case "", domain.StockInStock, domain.StockLow, domain.StockOutOfStock:
		filter.Status = st
	default:
		writeError(w, r, http.StatusBadRequest, "INVALID_REQUEST", "unknown stock status "+string(st))
		return
	}

	items, err := h.Service.List(r.Context(), filter)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	res := dto.ListInventoryResponse{Items: make([]dto.InventoryItemResponse, 0, len(items))}
	for _, it := range items {
		res.Items = append(res.Items, dto.NewInventoryItemResponse(it))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewInventoryItemResponse(item))
}

// Forecast projects demand over ?days= (default 7).
func (h *InventoryHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", defaultForecastDays)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	fc, err := h.Service.Forecast(r.Context(), r.PathValue("id"), days)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewForecastResponse(fc))
}

// Turnover reports consumption against stock over ?days= (default 30).
func (h *InventoryHandler) Turnover(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", defaultTurnoverDays)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	t, err := h.Service.Turnover(r.Context(), r.PathValue("id"), days)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewTurnoverResponse(t))
}

func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req dto.StockChangeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}

	item, err := h.Service.AdjustStock(r.Context(), r.PathValue("id"), req.QuantityChange)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewInventoryItemResponse(item))
}

func (h *InventoryHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.Service.Alerts(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	res := dto.ListAlertsResponse{Alerts: make([]dto.AlertResponse, 0, len(alerts))}
	for _, a := range alerts {
		res.Alerts = append(res.Alerts, dto.NewAlertResponse(a))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *InventoryHandler) ListWarehouses(w http.ResponseWriter, r *http.Request) {
	all, err := h.Service.WarehouseUtilization(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ListWarehousesResponse{Warehouses: dto.NewWarehouseResponses(all)})
}

func (h *InventoryHandler) GetWarehouse(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.Warehouse(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewWarehouseResponse(u))
}
