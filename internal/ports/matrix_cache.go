package ports

import (
	"context"
	"vehicle-route-optimizer/internal/domain"
)

// Persistent cache of distance matrices keyed by distance source and point set.
type MatrixCache interface {
	// Return the cached matrix and true, or false on a miss.
	Get(ctx context.Context, key string) (domain.DistanceMatrix, bool, error)
	// Store a matrix under key, replacing any previous value.
	Put(ctx context.Context, key string, m domain.DistanceMatrix) error
}
