package domain

import (
	"time"

	apperror "logistics-route-service/internal/errors"
)

type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockLow        StockStatus = "low_stock"
	StockOutOfStock StockStatus = "out_of_stock"
)

// A stocked item held in a warehouse.
// ConsumptionHistory holds one entry per day, oldest first.
type InventoryItem struct {
	ID                 string
	Name               string
	SKU                string
	Quantity           float64
	ReorderPoint       float64
	Unit               string
	Category           string
	Warehouse          string
	ConsumptionHistory []float64
	LastUpdated        time.Time
	// LastConsumedAt is the day of the last ConsumptionHistory entry.
	// Zero when unknown, e.g. for seeded history.
	LastConsumedAt time.Time
}

func (i InventoryItem) Status() StockStatus {
	switch {
	case i.Quantity <= 0:
		return StockOutOfStock
	case i.Quantity <= i.ReorderPoint:
		return StockLow
	default:
		return StockInStock
	}
}

// Clone returns a copy that shares no slices with i.
func (i InventoryItem) Clone() InventoryItem {
	out := i
	out.ConsumptionHistory = append([]float64(nil), i.ConsumptionHistory...)
	return out
}

// ApplyStockChange returns the item after adding delta at the given time.
// Consumption (a negative delta) is added to the last history entry when that
// entry was recorded on the same UTC day, and starts a new entry otherwise.
// Restocks never touch the history.
func (i InventoryItem) ApplyStockChange(delta float64, at time.Time) (InventoryItem, error) {
	if i.Quantity+delta < 0 {
		return InventoryItem{}, apperror.NewConflictError("insufficient stock for %s: have %g, change %g", i.ID, i.Quantity, delta)
	}

	out := i.Clone()
	out.Quantity += delta
	if delta < 0 {
		n := len(out.ConsumptionHistory)
		if n > 0 && !i.LastConsumedAt.IsZero() && sameDay(i.LastConsumedAt, at) {
			out.ConsumptionHistory[n-1] += -delta
		} else {
			out.ConsumptionHistory = append(out.ConsumptionHistory, -delta)
		}
		out.LastConsumedAt = at
	}
	out.LastUpdated = at
	return out, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

type ForecastConfidence string

const (
	ConfidenceNone   ForecastConfidence = "none"
	ConfidenceMedium ForecastConfidence = "medium"
	ConfidenceHigh   ForecastConfidence = "high"
)

// Projected demand for one item over a horizon. Derived on demand, never stored.
type Forecast struct {
	ItemID                   string
	HorizonDays              int
	AvgDailyDemand           float64
	PredictedDemand          float64
	EstimatedStockAfter      float64
	ReorderRecommended       bool
	RecommendedOrderQuantity float64
	// DaysUntilStockout is -1 when there is no demand to deplete stock.
	DaysUntilStockout float64
	Confidence        ForecastConfidence
	Method            string
	DataPoints        int
}

type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityWarning  AlertSeverity = "warning"
)

type Alert struct {
	ItemID       string
	ItemName     string
	Warehouse    string
	Type         StockStatus
	Severity     AlertSeverity
	Quantity     float64
	ReorderPoint float64
	Message      string
}

type TurnoverCategory string

const (
	TurnoverFast     TurnoverCategory = "fast_moving"
	TurnoverModerate TurnoverCategory = "moderate"
	TurnoverSlow     TurnoverCategory = "slow_moving"
)

type Turnover struct {
	ItemID     string
	PeriodDays int
	TotalSold  float64
	OnHand     float64
	Rate       float64
	Category   TurnoverCategory
}
