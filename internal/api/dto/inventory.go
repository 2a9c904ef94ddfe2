package dto

import (
	"time"

	"logistics-route-service/internal/domain"
)

type InventoryItemResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	SKU                string    `json:"sku"`
	Quantity           float64   `json:"quantity"`
	ReorderPoint       float64   `json:"reorder_point"`
	Unit               string    `json:"unit"`
	Category           string    `json:"category"`
	Warehouse          string    `json:"warehouse"`
	Status             string    `json:"status"`
	ConsumptionHistory []float64 `json:"consumption_history"`
	LastUpdated        time.Time `json:"last_updated"`
}

type ListInventoryResponse struct {
	Items []InventoryItemResponse `json:"items"`
}

type StockChangeRequest struct {
	// QuantityChange is signed: negative values record consumption.
	QuantityChange float64 `json:"quantity_change"`
}

type ForecastResponse struct {
	ItemID                   string  `json:"item_id"`
	HorizonDays              int     `json:"horizon_days"`
	AvgDailyDemand           float64 `json:"avg_daily_demand"`
	PredictedDemand          float64 `json:"predicted_demand"`
	EstimatedStockAfter      float64 `json:"estimated_stock_after"`
	ReorderRecommended       bool    `json:"reorder_recommended"`
	RecommendedOrderQuantity float64 `json:"recommended_order_quantity"`
	DaysUntilStockout        float64 `json:"days_until_stockout"`
	Confidence               string  `json:"confidence"`
	Method                   string  `json:"method"`
	DataPoints               int     `json:"data_points"`
}

type AlertResponse struct {
	ItemID       string  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	Warehouse    string  `json:"warehouse"`
	Type         string  `json:"type"`
	Severity     string  `json:"severity"`
	Quantity     float64 `json:"quantity"`
	ReorderPoint float64 `json:"reorder_point"`
	Message      string  `json:"message"`
}

type ListAlertsResponse struct {
	Alerts []AlertResponse `json:"alerts"`
}

type TurnoverResponse struct {
	ItemID     string  `json:"item_id"`
	PeriodDays int     `json:"period_days"`
	TotalSold  float64 `json:"total_sold"`
	OnHand     float64 `json:"on_hand"`
	Rate       float64 `json:"turnover_rate"`
	Category   string  `json:"category"`
}

func NewInventoryItemResponse(it domain.InventoryItem) InventoryItemResponse {
	history := it.ConsumptionHistory
	if history == nil {
		history = []float64{}
	}
	return InventoryItemResponse{
		ID:                 it.ID,
		Name:               it.Name,
		SKU:                it.SKU,
		Quantity:           round2(it.Quantity),
		ReorderPoint:       it.ReorderPoint,
		Unit:               it.Unit,
		Category:           it.Category,
		Warehouse:          it.Warehouse,
		Status:             string(it.Status()),
		ConsumptionHistory: history,
		LastUpdated:        it.LastUpdated,
	}
}

func NewForecastResponse(f domain.Forecast) ForecastResponse {
	return ForecastResponse{
		ItemID:                   f.ItemID,
		HorizonDays:              f.HorizonDays,
		AvgDailyDemand:           round2(f.AvgDailyDemand),
		PredictedDemand:          round2(f.PredictedDemand),
		EstimatedStockAfter:      round2(f.EstimatedStockAfter),
		ReorderRecommended:       f.ReorderRecommended,
		RecommendedOrderQuantity: round2(f.RecommendedOrderQuantity),
		DaysUntilStockout:        round2(f.DaysUntilStockout),
		Confidence:               string(f.Confidence),
		Method:                   f.Method,
		DataPoints:               f.DataPoints,
	}
}

func NewAlertResponse(a domain.Alert) AlertResponse {
	return AlertResponse{
		ItemID:       a.ItemID,
		ItemName:     a.ItemName,
		Warehouse:    a.Warehouse,
		Type:         string(a.Type),
		Severity:     string(a.Severity),
		Quantity:     a.Quantity,
		ReorderPoint: a.ReorderPoint,
		Message:      a.Message,
	}
}

func NewTurnoverResponse(t domain.Turnover) TurnoverResponse {
	return TurnoverResponse{
		ItemID:     t.ItemID,
		PeriodDays: t.PeriodDays,
		TotalSold:  round2(t.TotalSold),
		OnHand:     round2(t.OnHand),
		Rate:       round2(t.Rate),
		Category:   string(t.Category),
	}
}
