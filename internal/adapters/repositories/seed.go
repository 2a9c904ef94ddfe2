package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Populate the database with the catalog from a JSON seed file.
// Existing rows with the same keys are overwritten.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	if db == nil {
		return errors.New("seed catalog: DB is nil")
	}

	c, err := LoadCatalogJSON(jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, l := range c.Locations {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO locations (location_id, name, latitude, longitude, is_depot)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (location_id) DO UPDATE
		SET name = EXCLUDED.name,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			is_depot = EXCLUDED.is_depot;
		`, l.ID, l.Name, l.Latitude, l.Longitude, l.IsDepot)
		if err != nil {
			return fmt.Errorf("seed catalog: insert location_id=%d: %w", l.ID, err)
		}
	}

	for _, v := range c.Vehicles {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO vehicles (vehicle_id, name, capacity_kg, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (vehicle_id) DO UPDATE
		SET name = EXCLUDED.name,
			capacity_kg = EXCLUDED.capacity_kg,
			status = EXCLUDED.status;
		`, v.ID, v.Name, v.CapacityKg, string(v.Status))
		if err != nil {
			return fmt.Errorf("seed catalog: insert vehicle_id=%s: %w", v.ID, err)
		}
	}

	for _, it := range c.Inventory {
		history := it.ConsumptionHistory
		if history == nil {
			history = []float64{}
		}
		_, err := tx.ExecContext(ctx, `
		INSERT INTO inventory_items (item_id, name, sku, quantity, reorder_point, unit, category, warehouse, consumption_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (item_id) DO UPDATE
		SET name = EXCLUDED.name,
			sku = EXCLUDED.sku,
			quantity = EXCLUDED.quantity,
			reorder_point = EXCLUDED.reorder_point,
			unit = EXCLUDED.unit,
			category = EXCLUDED.category,
			warehouse = EXCLUDED.warehouse,
			consumption_history = EXCLUDED.consumption_history,
			last_updated = now(),
			last_consumed_at = NULL;
		`, it.ID, it.Name, it.SKU, it.Quantity, it.ReorderPoint, it.Unit, it.Category, it.Warehouse, history)
		if err != nil {
			return fmt.Errorf("seed catalog: insert item_id=%s: %w", it.ID, err)
		}
	}

	for _, w := range c.Warehouses {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO warehouses (warehouse_id, name, location, capacity, current_utilization)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (warehouse_id) DO UPDATE
		SET name = EXCLUDED.name,
			location = EXCLUDED.location,
			capacity = EXCLUDED.capacity,
			current_utilization = EXCLUDED.current_utilization;
		`, w.ID, w.Name, w.Location, w.Capacity, w.CurrentUtilization)
		if err != nil {
			return fmt.Errorf("seed catalog: insert warehouse_id=%s: %w", w.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}
