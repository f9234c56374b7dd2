package ports

import (
	"context"
	"vehicle-route-optimizer/internal/domain"
)

// Contract for turning a list of locations into an integer distance matrix.
// Implementations must return a symmetric matrix with a zero diagonal whose
// row i corresponds to points[i].
type MatrixProvider interface {
	// Short identifier of the distance source, e.g. "euclidean" or "ors:driving-car".
	Name() string
	// Build the full pairwise matrix for points.
	BuildMatrix(ctx context.Context, points []domain.Point) (domain.DistanceMatrix, error)
}
