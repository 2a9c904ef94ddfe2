// Package forecast projects near-term demand and stock levels from consumption history.
package forecast

import (
	"errors"
	"fmt"

	"logistics-route-service/internal/domain"
	apperror "logistics-route-service/internal/errors"
)

// DefaultWindow is the number of trailing history entries averaged.
const DefaultWindow = 30

// confidenceThreshold is the history length above which a forecast is high confidence.
const confidenceThreshold = 10

// Forecaster is stateless; the zero value uses DefaultWindow.
type Forecaster struct {
	Window int
}

func New(window int) Forecaster {
	return Forecaster{Window: window}
}

func (f Forecaster) window() int {
	if f.Window <= 0 {
		return DefaultWindow
	}
	return f.Window
}

func (f Forecaster) method() string {
	return fmt.Sprintf("moving_average_%d", f.window())
}

// Forecast projects demand for item over horizonDays.
//
// Predicted demand is the trailing moving average of daily consumption times
// the horizon. Stock after the horizon is clamped at zero. A reorder is
// recommended once that stock is at or below the reorder point, sized to bring
// stock back to twice the reorder point. An item without history gets a zero
// forecast and no recommendation.
func (f Forecaster) Forecast(item domain.InventoryItem, horizonDays int) (domain.Forecast, error) {
	if horizonDays <= 0 {
		return domain.Forecast{}, apperror.NewInvalidRequestError("horizon must be at least 1 day, got %d", horizonDays)
	}

	out := domain.Forecast{
		ItemID:      item.ID,
		HorizonDays: horizonDays,
		DataPoints:  len(item.ConsumptionHistory),
	}

	avg, err := movingAverage(item.ID, item.ConsumptionHistory, f.window())
	var insufficient *apperror.InsufficientDataError
	if errors.As(err, &insufficient) {
		out.EstimatedStockAfter = max(0, item.Quantity)
		out.DaysUntilStockout = -1
		out.Confidence = domain.ConfidenceNone
		out.Method = "none"
		return out, nil
	}
	if err != nil {
		return domain.Forecast{}, fmt.Errorf("forecast item %q: %w", item.ID, err)
	}

	out.AvgDailyDemand = avg
	out.PredictedDemand = avg * float64(horizonDays)
	out.EstimatedStockAfter = max(0, item.Quantity-out.PredictedDemand)
	out.ReorderRecommended = out.EstimatedStockAfter <= item.ReorderPoint
	if out.ReorderRecommended {
		out.RecommendedOrderQuantity = max(0, 2*item.ReorderPoint-out.EstimatedStockAfter)
	}

	switch {
	case item.Quantity <= 0:
		out.DaysUntilStockout = 0
	case avg > 0:
		out.DaysUntilStockout = item.Quantity / avg
	default:
		out.DaysUntilStockout = -1
	}

	out.Confidence = domain.ConfidenceMedium
	if len(item.ConsumptionHistory) > confidenceThreshold {
		out.Confidence = domain.ConfidenceHigh
	}
	out.Method = f.method()

	return out, nil
}

// movingAverage averages the last window entries of history. Negative
// entries count as zero consumption.
func movingAverage(itemID string, history []float64, window int) (float64, error) {
	if len(history) == 0 {
		return 0, &apperror.InsufficientDataError{ItemID: itemID}
	}

	recent := history[max(0, len(history)-window):]
	sum := 0.0
	for _, v := range recent {
		sum += max(0, v)
	}
	return sum / float64(len(recent)), nil
}

// Alerts lists out-of-stock items (critical) followed by low-stock items (warning).
func Alerts(items []domain.InventoryItem) []domain.Alert {
	var out, low []domain.Alert
	for _, it := range items {
		a := domain.Alert{
			ItemID:       it.ID,
			ItemName:     it.Name,
			Warehouse:    it.Warehouse,
			Quantity:     it.Quantity,
			ReorderPoint: it.ReorderPoint,
		}
		switch it.Status() {
		case domain.StockOutOfStock:
			a.Type = domain.StockOutOfStock
			a.Severity = domain.SeverityCritical
			a.Message = fmt.Sprintf("%s is out of stock", it.Name)
			out = append(out, a)
		case domain.StockLow:
			a.Type = domain.StockLow
			a.Severity = domain.SeverityWarning
			a.Message = fmt.Sprintf("%s is below reorder point (%g/%g)", it.Name, it.Quantity, it.ReorderPoint)
			low = append(low, a)
		}
	}
	return append(out, low...)
}

// Turnover relates consumption over the trailing days to the stock on hand.
func Turnover(item domain.InventoryItem, days int) (domain.Turnover, error) {
	if days <= 0 {
		return domain.Turnover{}, apperror.NewInvalidRequestError("turnover period must be at least 1 day, got %d", days)
	}

	h := item.ConsumptionHistory
	sold := 0.0
	for _, v := range h[max(0, len(h)-days):] {
		sold += max(0, v)
	}

	t := domain.Turnover{
		ItemID:     item.ID,
		PeriodDays: days,
		TotalSold:  sold,
		OnHand:     item.Quantity,
	}
	if item.Quantity > 0 {
		t.Rate = sold / item.Quantity
	}

	switch {
	case t.Rate > 4:
		t.Category = domain.TurnoverFast
	case t.Rate > 1:
		t.Category = domain.TurnoverModerate
	default:
		t.Category = domain.TurnoverSlow
	}
	return t, nil
}
