package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"logistics-route-service/internal/domain"
	apperror "logistics-route-service/internal/errors"
	"logistics-route-service/internal/forecast"
	"logistics-route-service/internal/ports"
	"logistics-route-service/internal/services"
)

func mouse() domain.InventoryItem {
	return domain.InventoryItem{
		ID:                 "INV-003",
		Name:               "Wireless Mouse",
		SKU:                "ELEC-003",
		Quantity:           18,
		ReorderPoint:       15,
		Unit:               "units",
		Category:           "Electronics",
		Warehouse:          "Depot A",
		ConsumptionHistory: []float64{2, 1, 3},
	}
}

func TestInventoryService_Forecast(t *testing.T) {
	repo := new(MockInventory)
	repo.On("GetItem", mock.Anything, "INV-003").Return(mouse(), nil)
	svc := &services.InventoryService{Repo: repo, Forecaster: forecast.New(30)}

	fc, err := svc.Forecast(context.Background(), "INV-003", 7)

	require.NoError(t, err)
	assert.InDelta(t, 14, fc.PredictedDemand, 1e-9)
	assert.InDelta(t, 4, fc.EstimatedStockAfter, 1e-9)
	assert.True(t, fc.ReorderRecommended)
	assert.InDelta(t, 26, fc.RecommendedOrderQuantity, 1e-9)
}

func TestInventoryService_ForecastUnknownItem(t *testing.T) {
	repo := new(MockInventory)
	repo.On("GetItem", mock.Anything, "INV-404").Return(domain.InventoryItem{}, apperror.NewNotFoundError("inventory item %q", "INV-404"))
	svc := &services.InventoryService{Repo: repo}

	_, err := svc.Forecast(context.Background(), "INV-404", 7)

	assert.True(t, apperror.Is(err, "NOT_FOUND"), "err = %v", err)
}

func TestInventoryService_AdjustStockPublishesOnLowStock(t *testing.T) {
	before := mouse()
	after := mouse()
	after.Quantity = 10
	after.ConsumptionHistory = append(after.ConsumptionHistory, 8)

	repo := new(MockInventory)
	repo.On("GetItem", mock.Anything, "INV-003").Return(before, nil)
	repo.On("ApplyStockChange", mock.Anything, "INV-003", -8.0, fixedNow).Return(after, nil)
	events := new(MockEvents)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(evt ports.Event) bool {
		return evt.Type == "inventory.low_stock" && evt.Topic == ports.TopicInventory && evt.Data["item_id"] == "INV-003"
	})).Once()

	svc := &services.InventoryService{Repo: repo, Events: events, Now: func() time.Time { return fixedNow }}
	got, err := svc.AdjustStock(context.Background(), "INV-003", -8)

	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Quantity)
	events.AssertExpectations(t)
}

func TestInventoryService_AdjustStockNoEventWhenStatusUnchanged(t *testing.T) {
	before := mouse()
	after := mouse()
	after.Quantity = 28

	repo := new(MockInventory)
	repo.On("GetItem", mock.Anything, "INV-003").Return(before, nil)
	repo.On("ApplyStockChange", mock.Anything, "INV-003", 10.0, mock.Anything).Return(after, nil)
	events := new(MockEvents)

	svc := &services.InventoryService{Repo: repo, Events: events}
	_, err := svc.AdjustStock(context.Background(), "INV-003", 10)

	require.NoError(t, err)
	events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestInventoryService_AdjustStockErrors(t *testing.T) {
	repo := new(MockInventory)
	repo.On("GetItem", mock.Anything, "INV-003").Return(mouse(), nil)
	repo.On("ApplyStockChange", mock.Anything, "INV-003", -100.0, mock.Anything).
		Return(domain.InventoryItem{}, apperror.NewConflictError("insufficient stock"))
	svc := &services.InventoryService{Repo: repo}

	_, err := svc.AdjustStock(context.Background(), "INV-003", 0)
	assert.True(t, apperror.Is(err, "INVALID_REQUEST"), "err = %v", err)

	_, err = svc.AdjustStock(context.Background(), "INV-003", -100)
	assert.True(t, apperror.Is(err, "CONFLICT"), "err = %v", err)
}

func TestInventoryService_ListFilterAndAlerts(t *testing.T) {
	paper := domain.InventoryItem{ID: "INV-007", Name: "Printer Paper", Quantity: 0, ReorderPoint: 50, Category: "Office Supplies", Warehouse: "Depot B"}
	laptop := domain.InventoryItem{ID: "INV-001", Name: "Laptop Computer", Quantity: 45, ReorderPoint: 20, Category: "Electronics", Warehouse: "Depot A"}

	repo := new(MockInventory)
	repo.On("ListItems", mock.Anything).Return([]domain.InventoryItem{laptop, mouse(), paper}, nil)
	svc := &services.InventoryService{Repo: repo}

	items, err := svc.List(context.Background(), services.InventoryFilter{Category: "electronics"})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = svc.List(context.Background(), services.InventoryFilter{Status: domain.StockOutOfStock})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "INV-007", items[0].ID)

	alerts, err := svc.Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.SeverityCritical, alerts[0].Severity)
}

func TestInventoryService_Turnover(t *testing.T) {
	repo := new(MockInventory)
	repo.On("GetItem", mock.Anything, "INV-003").Return(mouse(), nil)
	svc := &services.InventoryService{Repo: repo}

	got, err := svc.Turnover(context.Background(), "INV-003", 30)

	require.NoError(t, err)
	assert.InDelta(t, 6, got.TotalSold, 1e-9)
	assert.Equal(t, domain.TurnoverSlow, got.Category)
}

func TestInventoryService_WarehouseUtilization(t *testing.T) {
	repo := new(MockInventory)
	repo.On("ListItems", mock.Anything).Return(sampleStock(), nil)
	warehouses := new(MockWarehouses)
	warehouses.On("ListWarehouses", mock.Anything).Return(sampleWarehouses(), nil)
	svc := &services.InventoryService{Repo: repo, Warehouses: warehouses}

	all, err := svc.WarehouseUtilization(context.Background())

	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "WH-001", all[0].Warehouse.ID)
	assert.Equal(t, 3, all[0].TotalItems)
	assert.Equal(t, 1, all[0].LowStockItems)
	assert.Equal(t, 1, all[0].OutOfStockItems)
	assert.InDelta(t, 65, all[0].Warehouse.UtilizationPercent(), 1e-9)
	assert.Equal(t, 1, all[1].TotalItems)
	assert.Zero(t, all[1].LowStockItems)

	one, err := svc.Warehouse(context.Background(), "WH-002")
	require.NoError(t, err)
	assert.Equal(t, "Depot B", one.Warehouse.Name)

	_, err = svc.Warehouse(context.Background(), "WH-404")
	assert.True(t, apperror.Is(err, "NOT_FOUND"), "err = %v", err)
}

func TestInventoryService_WarehouseUtilizationWithoutStore(t *testing.T) {
	svc := &services.InventoryService{Repo: new(MockInventory)}

	all, err := svc.WarehouseUtilization(context.Background())

	require.NoError(t, err)
	assert.Empty(t, all)
}
