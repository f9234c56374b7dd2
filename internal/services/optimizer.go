package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"vehicle-route-optimizer/internal/domain"
	"vehicle-route-optimizer/internal/platform/obs"

	"golang.org/x/sync/errgroup"
)

// DefaultTimeBudget matches the search limit used for interactive runs.
const DefaultTimeBudget = 5 * time.Second

// Options configures Optimize.
type Options struct {
	TimeBudget time.Duration
	// Number of independent searches run in parallel. Values below 1 mean 1.
	Workers           int
	LambdaCoefficient float64
	MaxLocalOptima    int
}

// Result is the outcome of Optimize. Distances are true (unpenalized) totals.
type Result struct {
	Routes          []domain.Route
	TotalDistance   int
	InitialDistance int
	Stats           OptimizeStats
}

type OptimizeStats struct {
	Workers     int
	BestWorker  int
	Moves       int64
	LocalOptima int64
	Elapsed     time.Duration
}

// Optimize builds routes for numVehicles vehicles leaving and returning to
// depot so that every other node is visited once, minimizing total distance
// within opts.TimeBudget.
//
// Input errors wrap domain.ErrInvalidInput. Running out of time is not an
// error: the best solution found so far is returned, which at worst is the
// construction heuristic's solution.
func Optimize(
	ctx context.Context,
	m domain.DistanceMatrix,
	numVehicles int,
	depot int,
	opts Options,
) (_ *Result, err error) {
	defer obs.Time(ctx, "optimizer.Optimize")(&err)

	start := time.Now()

	if err := domain.ValidateProblem(m, numVehicles, depot); err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}

	if m.Size() == 1 {
		return &Result{
			Routes: domain.NewEmptySolution(numVehicles, depot).Routes,
			Stats:  OptimizeStats{Workers: 0, Elapsed: time.Since(start)},
		}, nil
	}

	initial, err := BuildInitialSolution(m, numVehicles, depot)
	if err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	initialCost := TotalCost(initial, m)

	workers := max(opts.Workers, 1)
	coef := opts.LambdaCoefficient
	if coef <= 0 {
		coef = DefaultLambdaCoefficient
	}

	var counters searchCounters
	solutions := make([]*domain.Solution, workers)
	costs := make([]int, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		searchOpts := SearchOptions{
			TimeBudget: opts.TimeBudget,
			// Each worker explores a differently shaped augmented landscape.
			LambdaCoefficient: coef * (1 + 0.5*float64(w)),
			MaxLocalOptima:    opts.MaxLocalOptima,
		}
		g.Go(func() error {
			sol, stats := improve(gctx, initial, m, searchOpts, &counters)
			solutions[w] = sol
			costs[w] = stats.BestCost
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("optimize: search: %w", err)
	}

	bestWorker := 0
	for w := 1; w < workers; w++ {
		if costs[w] < costs[bestWorker] {
			bestWorker = w
		}
	}
	best := solutions[bestWorker]

	if err := best.CheckPartition(m.Size(), depot); err != nil {
		return nil, fmt.Errorf("optimize: search produced an invalid solution: %w", err)
	}

	total := TotalCost(best, m)
	res := &Result{
		Routes:          best.Routes,
		TotalDistance:   total,
		InitialDistance: initialCost,
		Stats: OptimizeStats{
			Workers:     workers,
			BestWorker:  bestWorker,
			Moves:       counters.moves.Load(),
			LocalOptima: counters.localOptima.Load(),
			Elapsed:     time.Since(start),
		},
	}

	log.Printf(
		"optimize: nodes=%d vehicles=%d workers=%d initial=%d best=%d moves=%d local_optima=%d",
		m.Size(), numVehicles, workers, initialCost, total, res.Stats.Moves, res.Stats.LocalOptima,
	)

	return res, nil
}
