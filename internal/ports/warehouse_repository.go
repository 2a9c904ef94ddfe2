package ports

import (
	"context"

	"logistics-route-service/internal/domain"
)

// Port: read access to warehouses.
type WarehouseRepository interface {
	// Return every warehouse ordered by id.
	ListWarehouses(ctx context.Context) ([]domain.Warehouse, error)
}
