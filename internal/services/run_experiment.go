package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vehicle-route-optimizer/internal/domain"
	"vehicle-route-optimizer/internal/ports"

	"github.com/google/uuid"
)

type RunExperimentRequest struct {
	NumLocations int
	NumVehicles  int
	Seed         int64
	// Optional explicit instance; when set, NumLocations is taken from it
	// and the location source is not consulted.
	Points   []domain.Point
	Optimize Options
	System   *domain.SysInfo
}

// RunExperiment compares the naive sequential split with the optimizer on
// one instance and records the outcome.
//
// Steps: obtain points (explicit or generated from the seed), build the
// distance matrix, price the naive baseline, optimize, and persist the run
// when a repository is given (repo may be nil).
func RunExperiment(
	ctx context.Context,
	req RunExperimentRequest,
	source ports.LocationSource,
	provider ports.MatrixProvider,
	repo ports.RunRepository,
) (*domain.Run, error) {
	if provider == nil {
		return nil, errors.New("run experiment: matrix provider must be non-nil")
	}
	if req.NumVehicles < 1 {
		return nil, fmt.Errorf("run experiment: num_vehicles=%d must be at least 1: %w", req.NumVehicles, domain.ErrInvalidInput)
	}

	points := req.Points
	if len(points) == 0 {
		if source == nil {
			return nil, errors.New("run experiment: no points given and no location source configured")
		}
		if req.NumLocations < 2 {
			return nil, fmt.Errorf("run experiment: num_locations=%d must be at least 2: %w", req.NumLocations, domain.ErrInvalidInput)
		}

		var err error
		points, err = source.Locations(ctx, req.NumLocations, req.Seed)
		if err != nil {
			return nil, fmt.Errorf("run experiment: generate locations: %w", err)
		}
	}

	m, err := provider.BuildMatrix(ctx, points)
	if err != nil {
		return nil, fmt.Errorf("run experiment: build distance matrix: %w", err)
	}
	if m.Size() != len(points) {
		return nil, fmt.Errorf("run experiment: matrix has %d rows for %d points", m.Size(), len(points))
	}

	naiveRoutes, err := NaivePartition(len(points), req.NumVehicles)
	if err != nil {
		return nil, fmt.Errorf("run experiment: naive baseline: %w", err)
	}
	naiveTotal := TotalRoutesCost(naiveRoutes, m)

	res, err := Optimize(ctx, m, req.NumVehicles, 0, req.Optimize)
	if err != nil {
		return nil, fmt.Errorf("run experiment: optimize: %w", err)
	}

	run := &domain.Run{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		NumLocations:    len(points),
		NumVehicles:     req.NumVehicles,
		Seed:            req.Seed,
		DistanceSource:  provider.Name(),
		TimeBudget:      req.Optimize.TimeBudget,
		Points:          points,
		NaiveRoutes:     naiveRoutes,
		NaiveTotal:      naiveTotal,
		OptimizedRoutes: res.Routes,
		OptimizedTotal:  res.TotalDistance,
		System:          req.System,
	}

	if repo != nil {
		if err := repo.SaveRun(ctx, run); err != nil {
			return nil, fmt.Errorf("run experiment: save run %s: %w", run.ID, err)
		}
	}

	return run, nil
}
