package repositories

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"logistics-route-service/internal/domain"
	apperror "logistics-route-service/internal/errors"
)

// In-memory implementation of the location, vehicle and inventory ports.
// It is safe for concurrent use and hands out copies only.
type MemoryCatalog struct {
	mu        sync.RWMutex
	locations []domain.Location
	vehicles   []domain.Vehicle
	items      map[string]domain.InventoryItem
	warehouses []domain.Warehouse
}

func NewMemoryCatalog(c Catalog) *MemoryCatalog {
	m := &MemoryCatalog{
		locations: slices.Clone(c.Locations),
		vehicles:  slices.Clone(c.Vehicles),
		items:      make(map[string]domain.InventoryItem, len(c.Inventory)),
		warehouses: slices.Clone(c.Warehouses),
	}
	slices.SortFunc(m.locations, func(a, b domain.Location) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(m.vehicles, func(a, b domain.Vehicle) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(m.warehouses, func(a, b domain.Warehouse) int { return cmp.Compare(a.ID, b.ID) })
	for _, it := range c.Inventory {
		m.items[it.ID] = it.Clone()
	}
	return m
}

func (m *MemoryCatalog) ListLocations(ctx context.Context) ([]domain.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.locations), nil
}

func (m *MemoryCatalog) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.vehicles), nil
}

func (m *MemoryCatalog) ListWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.warehouses), nil
}

// ListItems returns every item ordered by id.
func (m *MemoryCatalog) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.InventoryItem, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it.Clone())
	}
	slices.SortFunc(out, func(a, b domain.InventoryItem) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (m *MemoryCatalog) GetItem(ctx context.Context, id string) (domain.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, ok := m.items[id]
	if !ok {
		return domain.InventoryItem{}, apperror.NewNotFoundError("inventory item %q", id)
	}
	return it.Clone(), nil
}

func (m *MemoryCatalog) ApplyStockChange(ctx context.Context, id string, delta float64, at time.Time) (domain.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[id]
	if !ok {
		return domain.InventoryItem{}, apperror.NewNotFoundError("inventory item %q", id)
	}
	next, err := it.ApplyStockChange(delta, at)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	m.items[id] = next
	return next.Clone(), nil
}
