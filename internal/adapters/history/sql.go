package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"logistics-route-service/internal/domain"
	"logistics-route-service/internal/platform/obs"
)

// SQLHistory stores planned routes in the route_history table.
type SQLHistory struct {
	DB *sql.DB
}

func NewSQLHistory(db *sql.DB) *SQLHistory {
	return &SQLHistory{DB: db}
}

func (s *SQLHistory) Record(ctx context.Context, rec domain.RouteRecord) (err error) {
	defer obs.Time(ctx, "route.history.Record")(&err)

	if s.DB == nil {
		return errors.New("route history: db is nil")
	}
	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("insert route history: id must not be empty")
	}

	body, err := json.Marshal(rec.Route)
	if err != nil {
		return fmt.Errorf("insert route history: encode route: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO route_history (route_id, created_at, algorithm, total_distance_km, route)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (route_id) DO NOTHING;
	`, rec.ID, rec.CreatedAt, string(rec.Route.Algorithm), rec.Route.TotalDistanceKm, body)
	if err != nil {
		return fmt.Errorf("insert route history id=%q: %w", rec.ID, err)
	}
	return nil
}

func (s *SQLHistory) List(ctx context.Context, limit int) (_ []domain.RouteRecord, err error) {
	defer obs.Time(ctx, "route.history.List")(&err)

	if s.DB == nil {
		return nil, errors.New("route history: db is nil")
	}

	q := `
	SELECT route_id, created_at, route
	FROM route_history
	ORDER BY created_at DESC, route_id DESC
	`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list route history: query route_history table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.RouteRecord, 0, 16)
	for rows.Next() {
		var rec domain.RouteRecord
		var body []byte
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &body); err != nil {
			return nil, fmt.Errorf("list route history: scan rows: %w", err)
		}
		if err := json.Unmarshal(body, &rec.Route); err != nil {
			return nil, fmt.Errorf("list route history: decode route %q: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list route history: row iteration: %w", err)
	}

	return out, nil
}
