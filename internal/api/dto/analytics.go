package dto

import "logistics-route-service/internal/domain"

type WarehouseResponse struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	Location              string  `json:"location"`
	Capacity              float64 `json:"capacity"`
	CurrentUtilization    float64 `json:"current_utilization"`
	UtilizationPercentage float64 `json:"utilization_percentage"`
	TotalItems            int     `json:"total_items"`
	LowStockItems         int     `json:"low_stock_items"`
	OutOfStockItems       int     `json:"out_of_stock_items"`
}

type ListWarehousesResponse struct {
	Warehouses []WarehouseResponse `json:"warehouses"`
}

type RouteKPIs struct {
	Total               int     `json:"total"`
	TotalDistanceKm     float64 `json:"total_distance_km"`
	AverageDistanceKm   float64 `json:"average_distance_km"`
	TotalEstimatedHours float64 `json:"total_estimated_hours"`
}

type VehicleKPIs struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	InUse       int `json:"in_use"`
	Maintenance int `json:"maintenance"`
}

type InventoryKPIs struct {
	TotalItems            int     `json:"total_items"`
	LowStock              int     `json:"low_stock"`
	OutOfStock            int     `json:"out_of_stock"`
	StockHealthPercentage float64 `json:"stock_health_percentage"`
}

type AnalyticsResponse struct {
	Routes     RouteKPIs           `json:"routes"`
	Vehicles   VehicleKPIs         `json:"vehicles"`
	Inventory  InventoryKPIs       `json:"inventory"`
	Warehouses []WarehouseResponse `json:"warehouses"`
}

func NewWarehouseResponse(u domain.WarehouseUtilization) WarehouseResponse {
	w := u.Warehouse
	return WarehouseResponse{
		ID:                    w.ID,
		Name:                  w.Name,
		Location:              w.Location,
		Capacity:              w.Capacity,
		CurrentUtilization:    w.CurrentUtilization,
		UtilizationPercentage: round2(w.UtilizationPercent()),
		TotalItems:            u.TotalItems,
		LowStockItems:         u.LowStockItems,
		OutOfStockItems:       u.OutOfStockItems,
	}
}

func NewWarehouseResponses(all []domain.WarehouseUtilization) []WarehouseResponse {
	out := make([]WarehouseResponse, 0, len(all))
	for _, u := range all {
		out = append(out, NewWarehouseResponse(u))
	}
	return out
}

func NewAnalyticsResponse(a domain.Analytics) AnalyticsResponse {
	return AnalyticsResponse{
		Routes: RouteKPIs{
			Total:               a.Routes.Count,
			TotalDistanceKm:     round2(a.Routes.TotalDistanceKm),
			AverageDistanceKm:   round2(a.Routes.AverageDistanceKm),
			TotalEstimatedHours: round2(a.Routes.TotalEstimatedHr),
		},
		Vehicles: VehicleKPIs{
			Total:       a.Vehicles.Total,
			Available:   a.Vehicles.Available,
			InUse:       a.Vehicles.InUse,
			Maintenance: a.Vehicles.Maintenance,
		},
		Inventory: InventoryKPIs{
			TotalItems:            a.Inventory.TotalItems,
			LowStock:              a.Inventory.LowStock,
			OutOfStock:            a.Inventory.OutOfStock,
			StockHealthPercentage: round2(a.Inventory.HealthPercent()),
		},
		Warehouses: NewWarehouseResponses(a.Warehouses),
	}
}
