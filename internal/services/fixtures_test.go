package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"logistics-route-service/internal/domain"
	"logistics-route-service/internal/genetic"
	"logistics-route-service/internal/ports"
	"logistics-route-service/internal/services"
)

func sampleLocations() []domain.Location {
	return []domain.Location{
		{ID: 1, Name: "Depot A", Latitude: 12.9716, Longitude: 77.5946, IsDepot: true},
		{ID: 2, Name: "Depot B", Latitude: 13.0358, Longitude: 77.5970, IsDepot: true},
		{ID: 3, Name: "Customer 1", Latitude: 12.9352, Longitude: 77.6245},
		{ID: 4, Name: "Customer 2", Latitude: 12.9698, Longitude: 77.6480},
		{ID: 5, Name: "Customer 3", Latitude: 12.9141, Longitude: 77.6411},
		{ID: 6, Name: "Customer 4", Latitude: 13.0189, Longitude: 77.6410},
		{ID: 7, Name: "Customer 5", Latitude: 12.9279, Longitude: 77.6271},
		{ID: 8, Name: "Customer 6", Latitude: 12.9833, Longitude: 77.6412},
		{ID: 9, Name: "Customer 7", Latitude: 12.9539, Longitude: 77.6619},
		{ID: 10, Name: "Customer 8", Latitude: 12.8996, Longitude: 77.6354},
	}
}

func sampleFleet() []domain.Vehicle {
	return []domain.Vehicle{
		{ID: "V001", Name: "Truck Alpha", CapacityKg: 1000, Status: domain.VehicleAvailable},
		{ID: "V002", Name: "Truck Beta", CapacityKg: 1500, Status: domain.VehicleAvailable},
		{ID: "V003", Name: "Van Gamma", CapacityKg: 500, Status: domain.VehicleAvailable},
		{ID: "V004", Name: "Truck Delta", CapacityKg: 1200, Status: domain.VehicleAvailable},
		{ID: "V005", Name: "Van Epsilon", CapacityKg: 600, Status: domain.VehicleMaintenance},
	}
}

func newAssembler() *services.RouteAssembler {
	g := genetic.DefaultConfig()
	g.TimeBudget = 0
	g.Seed = 42
	return services.NewRouteAssembler(services.AssemblerOptions{
		SpeedKmh:        40,
		StopServiceTime: 15 * time.Minute,
		HeuristicWeight: 0.5,
		Genetic:         g,
	})
}

// --- Mocks ---

type MockLocations struct{ mock.Mock }

func (m *MockLocations) ListLocations(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Location), args.Error(1)
}

type MockVehicles struct{ mock.Mock }

func (m *MockVehicles) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

type MockHistory struct{ mock.Mock }

func (m *MockHistory) Record(ctx context.Context, rec domain.RouteRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockHistory) List(ctx context.Context, limit int) ([]domain.RouteRecord, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.RouteRecord), args.Error(1)
}

type MockEvents struct{ mock.Mock }

func (m *MockEvents) Publish(ctx context.Context, evt ports.Event) {
	m.Called(ctx, evt)
}

type MockInventory struct{ mock.Mock }

func (m *MockInventory) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventory) GetItem(ctx context.Context, id string) (domain.InventoryItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.InventoryItem), args.Error(1)
}

func (m *MockInventory) ApplyStockChange(ctx context.Context, id string, delta float64, at time.Time) (domain.InventoryItem, error) {
	args := m.Called(ctx, id, delta, at)
	return args.Get(0).(domain.InventoryItem), args.Error(1)
}

type MockWarehouses struct{ mock.Mock }

func (m *MockWarehouses) ListWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Warehouse), args.Error(1)
}

func sampleWarehouses() []domain.Warehouse {
	return []domain.Warehouse{
		{ID: "WH-001", Name: "Depot A", Location: "Depot A", Capacity: 10000, CurrentUtilization: 6500},
		{ID: "WH-002", Name: "Depot B", Location: "Depot B", Capacity: 8000, CurrentUtilization: 5200},
	}
}

// sampleStock holds one in-stock, one low and one out-of-stock item in Depot A
// and one in-stock item in Depot B.
func sampleStock() []domain.InventoryItem {
	return []domain.InventoryItem{
		{ID: "INV-001", Quantity: 45, ReorderPoint: 20, Warehouse: "Depot A"},
		{ID: "INV-003", Quantity: 15, ReorderPoint: 30, Warehouse: "Depot A"},
		{ID: "INV-007", Quantity: 0, ReorderPoint: 50, Warehouse: "Depot A"},
		{ID: "INV-011", Quantity: 1000, ReorderPoint: 500, Warehouse: "Depot B"},
	}
}
