package ports

import (
	"context"

	"logistics-route-service/internal/domain"
)

// Port: storage for planned routes.
type RouteHistory interface {
	Record(ctx context.Context, rec domain.RouteRecord) error
	// List returns up to limit records, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]domain.RouteRecord, error)
}
