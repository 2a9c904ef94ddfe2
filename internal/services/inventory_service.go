package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"logistics-route-service/internal/domain"
	apperror "logistics-route-service/internal/errors"
	"logistics-route-service/internal/forecast"
	"logistics-route-service/internal/platform/metrics"
	"logistics-route-service/internal/platform/obs"
	"logistics-route-service/internal/ports"
)

// InventoryService exposes the forecaster and stock operations over the inventory store.
type InventoryService struct {
	Repo       ports.InventoryRepository
	Warehouses ports.WarehouseRepository
	Events     ports.EventPublisher
	Forecaster forecast.Forecaster
	Now        func() time.Time
}

// InventoryFilter narrows List. Empty fields match everything.
type InventoryFilter struct {
	Warehouse string
	Category  string
	Status    domain.StockStatus
}

func (f InventoryFilter) matches(it domain.InventoryItem) bool {
	if f.Warehouse != "" && !strings.EqualFold(f.Warehouse, it.Warehouse) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(f.Category, it.Category) {
		return false
	}
	if f.Status != "" && f.Status != it.Status() {
		return false
	}
	return true
}

func (s *InventoryService) List(ctx context.Context, f InventoryFilter) ([]domain.InventoryItem, error) {
	items, err := s.Repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}

	out := make([]domain.InventoryItem, 0, len(items))
	for _, it := range items {
		if f.matches(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *InventoryService) Get(ctx context.Context, id string) (domain.InventoryItem, error) {
	item, err := s.Repo.GetItem(ctx, strings.TrimSpace(id))
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

// Forecast projects demand for one item. Unknown ids return a NotFoundError.
func (s *InventoryService) Forecast(ctx context.Context, id string, horizonDays int) (_ domain.Forecast, err error) {
	defer obs.Time(ctx, "inventory.forecast")(&err)

	item, err := s.Get(ctx, id)
	if err != nil {
		return domain.Forecast{}, fmt.Errorf("forecast: %w", err)
	}

	fc, err := s.Forecaster.Forecast(item, horizonDays)
	if err != nil {
		return domain.Forecast{}, fmt.Errorf("forecast: %w", err)
	}

	metrics.Forecasts.WithLabelValues(strconv.FormatBool(fc.ReorderRecommended)).Inc()
	return fc, nil
}

// AdjustStock applies a signed quantity change. Negative changes count as
// consumption. An event is published when the change moves the item into
// low or out-of-stock.
func (s *InventoryService) AdjustStock(ctx context.Context, id string, delta float64) (_ domain.InventoryItem, err error) {
	defer obs.Time(ctx, "inventory.adjust_stock")(&err)

	direction := "in"
	if delta < 0 {
		direction = "out"
	}

	if delta == 0 {
		return domain.InventoryItem{}, fmt.Errorf("adjust stock: %w", apperror.NewInvalidRequestError("quantity change must not be zero"))
	}

	before, err := s.Get(ctx, id)
	if err != nil {
		metrics.StockAdjustments.WithLabelValues(direction, "error").Inc()
		return domain.InventoryItem{}, fmt.Errorf("adjust stock: %w", err)
	}

	after, err := s.Repo.ApplyStockChange(ctx, before.ID, delta, s.now())
	if err != nil {
		metrics.StockAdjustments.WithLabelValues(direction, "error").Inc()
		return domain.InventoryItem{}, fmt.Errorf("adjust stock: %w", err)
	}
	metrics.StockAdjustments.WithLabelValues(direction, "ok").Inc()

	if st := after.Status(); st != before.Status() && st != domain.StockInStock && s.Events != nil {
		s.Events.Publish(ctx, ports.Event{
			Type:  "inventory." + string(st),
			Topic: ports.TopicInventory,
			Data: map[string]any{
				"item_id":       after.ID,
				"item_name":     after.Name,
				"warehouse":     after.Warehouse,
				"quantity":      after.Quantity,
				"reorder_point": after.ReorderPoint,
			},
			At: s.now(),
		})
	}

	return after, nil
}

func (s *InventoryService) Alerts(ctx context.Context) ([]domain.Alert, error) {
	items, err := s.Repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory alerts: %w", err)
	}
	return forecast.Alerts(items), nil
}

func (s *InventoryService) Turnover(ctx context.Context, id string, days int) (domain.Turnover, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return domain.Turnover{}, fmt.Errorf("turnover: %w", err)
	}
	t, err := forecast.Turnover(item, days)
	if err != nil {
		return domain.Turnover{}, fmt.Errorf("turnover: %w", err)
	}
	return t, nil
}

// WarehouseUtilization summarizes every warehouse with its item counts.
func (s *InventoryService) WarehouseUtilization(ctx context.Context) ([]domain.WarehouseUtilization, error) {
	if s.Warehouses == nil {
		return []domain.WarehouseUtilization{}, nil
	}
	warehouses, err := s.Warehouses.ListWarehouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("warehouse utilization: list warehouses: %w", err)
	}
	items, err := s.Repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("warehouse utilization: list items: %w", err)
	}

	out := make([]domain.WarehouseUtilization, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, domain.SummarizeWarehouse(w, items))
	}
	return out, nil
}

// Warehouse summarizes one warehouse. Unknown ids return a NotFoundError.
func (s *InventoryService) Warehouse(ctx context.Context, id string) (domain.WarehouseUtilization, error) {
	all, err := s.WarehouseUtilization(ctx)
	if err != nil {
		return domain.WarehouseUtilization{}, err
	}
	id = strings.TrimSpace(id)
	for _, u := range all {
		if u.Warehouse.ID == id {
			return u, nil
		}
	}
	return domain.WarehouseUtilization{}, fmt.Errorf("warehouse utilization: %w", apperror.NewNotFoundError("warehouse %q", id))
}

func (s *InventoryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
