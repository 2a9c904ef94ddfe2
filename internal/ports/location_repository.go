package ports

import (
	"context"

	"logistics-route-service/internal/domain"
)

// Port: read access to the location catalog.
type LocationRepository interface {
	// Return every known location ordered by id.
	ListLocations(ctx context.Context) ([]domain.Location, error)
}
