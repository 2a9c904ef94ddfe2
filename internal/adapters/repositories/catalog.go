package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"logistics-route-service/internal/domain"
)

type LocationSeed struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IsDepot   bool    `json:"is_depot"`
}

type VehicleSeed struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	CapacityKg float64 `json:"capacity_kg"`
	Status     string  `json:"status"`
}

type InventorySeed struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	SKU                string    `json:"sku"`
	Quantity           float64   `json:"quantity"`
	ReorderPoint       float64   `json:"reorder_point"`
	Unit               string    `json:"unit"`
	Category           string    `json:"category"`
	Warehouse          string    `json:"warehouse"`
	ConsumptionHistory []float64 `json:"consumption_history"`
}

type WarehouseSeed struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Location           string  `json:"location"`
	Capacity           float64 `json:"capacity"`
	CurrentUtilization float64 `json:"current_utilization"`
}

type catalogFile struct {
	Locations  []LocationSeed  `json:"locations"`
	Vehicles   []VehicleSeed   `json:"vehicles"`
	Inventory  []InventorySeed `json:"inventory"`
	Warehouses []WarehouseSeed `json:"warehouses"`
}

// Catalog is the validated content of a seed file.
type Catalog struct {
	Locations []domain.Location
	Vehicles  []domain.Vehicle
	Inventory  []domain.InventoryItem
	Warehouses []domain.Warehouse
}

// Read and validate a catalog seed file.
func LoadCatalogJSON(path string) (Catalog, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("load catalog: read %q: %w", path, err)
	}
	return ParseCatalog(bytes)
}

func ParseCatalog(bytes []byte) (Catalog, error) {
	var data catalogFile
	if err := json.Unmarshal(bytes, &data); err != nil {
		return Catalog{}, fmt.Errorf("load catalog: parse json: %w", err)
	}

	var c Catalog

	ids := map[int]struct{}{}
	for i, l := range data.Locations {
		name := strings.TrimSpace(l.Name)
		if l.ID <= 0 {
			return Catalog{}, fmt.Errorf("load catalog: location at index %d: invalid id %d", i+1, l.ID)
		}
		if _, dup := ids[l.ID]; dup {
			return Catalog{}, fmt.Errorf("load catalog: location at index %d: duplicate id %d", i+1, l.ID)
		}
		ids[l.ID] = struct{}{}
		if name == "" {
			return Catalog{}, fmt.Errorf("load catalog: location at index %d: name cannot be empty", i+1)
		}
		c.Locations = append(c.Locations, domain.Location{
			ID:        l.ID,
			Name:      name,
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
			IsDepot:   l.IsDepot,
		})
	}

	for i, v := range data.Vehicles {
		id := strings.TrimSpace(v.ID)
		if id == "" {
			return Catalog{}, fmt.Errorf("load catalog: vehicle at index %d: id cannot be empty", i+1)
		}
		if v.CapacityKg <= 0 {
			return Catalog{}, fmt.Errorf("load catalog: vehicle %s: capacity must be positive", id)
		}
		status, err := domain.ParseVehicleStatus(v.Status)
		if err != nil {
			return Catalog{}, fmt.Errorf("load catalog: vehicle %s: %w", id, err)
		}
		c.Vehicles = append(c.Vehicles, domain.Vehicle{ID: id, Name: v.Name, CapacityKg: v.CapacityKg, Status: status})
	}

	for i, it := range data.Inventory {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			return Catalog{}, fmt.Errorf("load catalog: inventory item at index %d: id cannot be empty", i+1)
		}
		if it.Quantity < 0 || it.ReorderPoint < 0 {
			return Catalog{}, fmt.Errorf("load catalog: inventory item %s: quantity and reorder point must not be negative", id)
		}
		c.Inventory = append(c.Inventory, domain.InventoryItem{
			ID:                 id,
			Name:               it.Name,
			SKU:                it.SKU,
			Quantity:           it.Quantity,
			ReorderPoint:       it.ReorderPoint,
			Unit:               it.Unit,
			Category:           it.Category,
			Warehouse:          it.Warehouse,
			ConsumptionHistory: append([]float64(nil), it.ConsumptionHistory...),
		})
	}

	warehouseNames := map[string]struct{}{}
	for i, w := range data.Warehouses {
		id := strings.TrimSpace(w.ID)
		name := strings.TrimSpace(w.Name)
		if id == "" || name == "" {
			return Catalog{}, fmt.Errorf("load catalog: warehouse at index %d: id and name cannot be empty", i+1)
		}
		if _, dup := warehouseNames[name]; dup {
			return Catalog{}, fmt.Errorf("load catalog: warehouse %s: duplicate name %q", id, name)
		}
		warehouseNames[name] = struct{}{}
		if w.Capacity <= 0 || w.CurrentUtilization < 0 {
			return Catalog{}, fmt.Errorf("load catalog: warehouse %s: capacity must be positive and utilization not negative", id)
		}
		c.Warehouses = append(c.Warehouses, domain.Warehouse{
			ID:                 id,
			Name:               name,
			Location:           strings.TrimSpace(w.Location),
			Capacity:           w.Capacity,
			CurrentUtilization: w.CurrentUtilization,
		})
	}

	return c, nil
}
