package domain

// A storage site attached to a depot. Items reference it by Name.
type Warehouse struct {
	ID                 string
	Name               string
	Location           string
	Capacity           float64
	CurrentUtilization float64
}

// UtilizationPercent is CurrentUtilization as a share of Capacity, 0 when Capacity is not positive.
func (w Warehouse) UtilizationPercent() float64 {
	if w.Capacity <= 0 {
		return 0
	}
	return w.CurrentUtilization / w.Capacity * 100
}

// Per-warehouse stock summary.
type WarehouseUtilization struct {
	Warehouse       Warehouse
	TotalItems      int
	LowStockItems   int
	OutOfStockItems int
}

// SummarizeWarehouse counts the items stored in w by stock status.
func SummarizeWarehouse(w Warehouse, items []InventoryItem) WarehouseUtilization {
	u := WarehouseUtilization{Warehouse: w}
	for _, it := range items {
		if it.Warehouse != w.Name {
			continue
		}
		u.TotalItems++
		switch it.Status() {
		case StockLow:
			u.LowStockItems++
		case StockOutOfStock:
			u.OutOfStockItems++
		}
	}
	return u
}

// Fleet, inventory and route KPIs at one point in time.
type Analytics struct {
	Routes     RouteStats
	Vehicles   FleetStats
	Inventory  InventoryStats
	Warehouses []WarehouseUtilization
}

type FleetStats struct {
	Total       int
	Available   int
	InUse       int
	Maintenance int
}

// CountFleet tallies vehicles by status.
func CountFleet(fleet []Vehicle) FleetStats {
	s := FleetStats{Total: len(fleet)}
	for _, v := range fleet {
		switch v.Status {
		case VehicleAvailable:
			s.Available++
		case VehicleInUse:
			s.InUse++
		case VehicleMaintenance:
			s.Maintenance++
		}
	}
	return s
}

type InventoryStats struct {
	TotalItems int
	LowStock   int
	OutOfStock int
}

// HealthPercent is the share of items that are in stock. An empty inventory reports 0.
func (s InventoryStats) HealthPercent() float64 {
	if s.TotalItems == 0 {
		return 0
	}
	return float64(s.TotalItems-s.LowStock-s.OutOfStock) / float64(s.TotalItems) * 100
}

func CountInventory(items []InventoryItem) InventoryStats {
	s := InventoryStats{TotalItems: len(items)}
	for _, it := range items {
		switch it.Status() {
		case StockLow:
			s.LowStock++
		case StockOutOfStock:
			s.OutOfStock++
		}
	}
	return s
}
