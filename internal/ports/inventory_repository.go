package ports

import (
	"context"
	"time"

	"logistics-route-service/internal/domain"
)

// Port: the inventory store. It owns quantities and consumption history.
type InventoryRepository interface {
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)
	// GetItem returns a NotFoundError for unknown ids.
	GetItem(ctx context.Context, id string) (domain.InventoryItem, error)
	// ApplyStockChange adds delta to the item quantity in one step.
	// A negative delta is also recorded in the consumption history.
	// It returns a ConflictError if the quantity would go negative.
	ApplyStockChange(ctx context.Context, id string, delta float64, at time.Time) (domain.InventoryItem, error)
}
