package ports

import (
	"context"
	"vehicle-route-optimizer/internal/domain"
)

// Port: produces problem instances. The first point is the depot.
type LocationSource interface {
	// Return numLocations points (depot included) derived deterministically from seed.
	Locations(ctx context.Context, numLocations int, seed int64) ([]domain.Point, error)
}
