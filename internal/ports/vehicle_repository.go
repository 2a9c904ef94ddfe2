package ports

import (
	"context"

	"logistics-route-service/internal/domain"
)

// Port: read access to the fleet.
type VehicleRepository interface {
	// Return every vehicle ordered by id, regardless of status.
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
}
