package services

import (
	"context"
	"fmt"

	"logistics-route-service/internal/domain"
	"logistics-route-service/internal/platform/obs"
	"logistics-route-service/internal/ports"
)

// AnalyticsService composes route, fleet, inventory and warehouse KPIs.
type AnalyticsService struct {
	Planner   *RoutePlanner
	Vehicles  ports.VehicleRepository
	Inventory *InventoryService
}

func (a *AnalyticsService) Snapshot(ctx context.Context) (_ domain.Analytics, err error) {
	defer obs.Time(ctx, "analytics.snapshot")(&err)

	routes, err := a.Planner.Stats(ctx)
	if err != nil {
		return domain.Analytics{}, fmt.Errorf("analytics: %w", err)
	}

	fleet, err := a.Vehicles.ListVehicles(ctx)
	if err != nil {
		return domain.Analytics{}, fmt.Errorf("analytics: list vehicles: %w", err)
	}

	items, err := a.Inventory.Repo.ListItems(ctx)
	if err != nil {
		return domain.Analytics{}, fmt.Errorf("analytics: list items: %w", err)
	}

	warehouses, err := a.Inventory.WarehouseUtilization(ctx)
	if err != nil {
		return domain.Analytics{}, fmt.Errorf("analytics: %w", err)
	}

	return domain.Analytics{
		Routes:     routes,
		Vehicles:   domain.CountFleet(fleet),
		Inventory:  domain.CountInventory(items),
		Warehouses: warehouses,
	}, nil
}
