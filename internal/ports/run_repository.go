package ports

import (
	"context"
	"vehicle-route-optimizer/internal/domain"
)

// Port: a boundary for storing and retrieving optimization runs.
type RunRepository interface {
	// Persist a run together with its naive and optimized routes.
	SaveRun(ctx context.Context, run *domain.Run) error
	// Return the most recent run summaries, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)
	// Return one run with its routes and points.
	GetRun(ctx context.Context, id string) (*domain.Run, error)
}
