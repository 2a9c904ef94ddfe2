package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"logistics-route-service/internal/domain"
	apperror "logistics-route-service/internal/errors"
	"logistics-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the location, vehicle and inventory ports.
type PostgresCatalog struct {
	DB *sql.DB

	types *pgtype.Map
}

func NewPostgresCatalog(db *sql.DB) *PostgresCatalog {
	return &PostgresCatalog{DB: db, types: pgtype.NewMap()}
}

// Return all locations ordered by id.
func (p *PostgresCatalog) ListLocations(ctx context.Context) ([]domain.Location, error) {
	if p.DB == nil {
		return nil, errors.New("postgres catalog: DB is nil")
	}

	query := `
	SELECT location_id, name, latitude, longitude, is_depot
	FROM locations
	ORDER BY location_id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: query locations table: %w", err)
	}
	defer rows.Close()

	locations := make([]domain.Location, 0, 16)
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Latitude, &l.Longitude, &l.IsDepot); err != nil {
			return nil, fmt.Errorf("list locations: scan row: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: row iteration: %w", err)
	}

	return locations, nil
}

// Return all vehicles ordered by id.
func (p *PostgresCatalog) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	if p.DB == nil {
		return nil, errors.New("postgres catalog: DB is nil")
	}

	query := `
	SELECT vehicle_id, name, capacity_kg, status
	FROM vehicles
	ORDER BY vehicle_id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0, 8)
	for rows.Next() {
		var v domain.Vehicle
		var status string
		if err := rows.Scan(&v.ID, &v.Name, &v.CapacityKg, &status); err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		if v.Status, err = domain.ParseVehicleStatus(status); err != nil {
			return nil, fmt.Errorf("list vehicles: vehicle %s: %w", v.ID, err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}

// Return all warehouses ordered by id.
func (p *PostgresCatalog) ListWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	if p.DB == nil {
		return nil, errors.New("postgres catalog: DB is nil")
	}

	rows, err := p.DB.QueryContext(ctx, `
	SELECT warehouse_id, name, location, capacity, current_utilization
	FROM warehouses
	ORDER BY warehouse_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: query warehouses table: %w", err)
	}
	defer rows.Close()

	warehouses := make([]domain.Warehouse, 0, 4)
	for rows.Next() {
		var w domain.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Location, &w.Capacity, &w.CurrentUtilization); err != nil {
			return nil, fmt.Errorf("list warehouses: scan row: %w", err)
		}
		warehouses = append(warehouses, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list warehouses: row iteration: %w", err)
	}

	return warehouses, nil
}

const itemColumns = `item_id, name, sku, quantity, reorder_point, unit, category, warehouse, consumption_history, last_updated, last_consumed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (p *PostgresCatalog) scanItem(row rowScanner) (domain.InventoryItem, error) {
	var (
		it       domain.InventoryItem
		consumed sql.NullTime
	)
	err := row.Scan(
		&it.ID, &it.Name, &it.SKU, &it.Quantity, &it.ReorderPoint,
		&it.Unit, &it.Category, &it.Warehouse,
		p.types.SQLScanner(&it.ConsumptionHistory),
		&it.LastUpdated,
		&consumed,
	)
	if consumed.Valid {
		it.LastConsumedAt = consumed.Time
	}
	return it, err
}

func (p *PostgresCatalog) ListItems(ctx context.Context) (_ []domain.InventoryItem, err error) {
	defer obs.Time(ctx, "inventory.db.ListItems")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres catalog: DB is nil")
	}

	rows, err := p.DB.QueryContext(ctx, `SELECT `+itemColumns+` FROM inventory_items ORDER BY item_id;`)
	if err != nil {
		return nil, fmt.Errorf("list items: query inventory_items table: %w", err)
	}
	defer rows.Close()

	items := make([]domain.InventoryItem, 0, 32)
	for rows.Next() {
		it, err := p.scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("list items: scan row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: row iteration: %w", err)
	}

	return items, nil
}

func (p *PostgresCatalog) GetItem(ctx context.Context, id string) (domain.InventoryItem, error) {
	if p.DB == nil {
		return domain.InventoryItem{}, errors.New("postgres catalog: DB is nil")
	}

	row := p.DB.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE item_id = $1;`, id)
	it, err := p.scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.InventoryItem{}, apperror.NewNotFoundError("inventory item %q", id)
	}
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("get item %q: %w", id, err)
	}
	return it, nil
}

// ApplyStockChange locks the row, applies the change and writes it back in one transaction.
func (p *PostgresCatalog) ApplyStockChange(ctx context.Context, id string, delta float64, at time.Time) (_ domain.InventoryItem, err error) {
	defer obs.Time(ctx, "inventory.db.ApplyStockChange")(&err)

	if p.DB == nil {
		return domain.InventoryItem{}, errors.New("postgres catalog: DB is nil")
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("apply stock change: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE item_id = $1 FOR UPDATE;`, id)
	current, err := p.scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.InventoryItem{}, apperror.NewNotFoundError("inventory item %q", id)
	}
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("apply stock change: select %q: %w", id, err)
	}

	next, err := current.ApplyStockChange(delta, at)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	_, err = tx.ExecContext(ctx, `
	UPDATE inventory_items
	SET quantity = $2,
		consumption_history = $3,
		last_updated = $4,
		last_consumed_at = $5
	WHERE item_id = $1;
	`, id, next.Quantity, next.ConsumptionHistory, next.LastUpdated, nullTime(next.LastConsumedAt))
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("apply stock change: update %q: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return domain.InventoryItem{}, fmt.Errorf("apply stock change: commit: %w", err)
	}
	return next, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
