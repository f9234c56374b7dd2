package services

import (
	"context"
	"testing"
	"time"

	"vehicle-route-optimizer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImproveSquareReachesOptimum(t *testing.T) {
	m := squareMatrix()
	initial, err := BuildInitialSolution(m, 1, 0)
	require.NoError(t, err)

	best, stats := Improve(context.Background(), initial, m, SearchOptions{})

	assert.Equal(t, 4000, TotalCost(best, m))
	assert.Equal(t, 4828, stats.InitialCost)
	assert.Equal(t, 4000, stats.BestCost)
	assert.Equal(t, 1, stats.LocalOptima)
	assert.False(t, stats.StoppedByTime)
	assert.Equal(t, []domain.Route{{0, 1, 2, 3, 0}}, initial.Routes, "initial solution must not be modified")
}

func TestImproveNeverWorsens(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		m := randomMatrix(seed, 30)
		initial, err := BuildInitialSolution(m, 3, 0)
		require.NoError(t, err)

		best, stats := Improve(context.Background(), initial, m, SearchOptions{
			TimeBudget:     time.Second,
			MaxLocalOptima: 20,
		})

		require.NoError(t, best.CheckPartition(30, 0))
		assert.LessOrEqual(t, TotalCost(best, m), TotalCost(initial, m))
		assert.Equal(t, TotalCost(best, m), stats.BestCost)
		assert.LessOrEqual(t, stats.LocalOptima, 20)
	}
}

func TestImproveRespectsTimeBudget(t *testing.T) {
	m := randomMatrix(11, 60)
	initial, err := BuildInitialSolution(m, 4, 0)
	require.NoError(t, err)

	budget := 300 * time.Millisecond
	best, stats := Improve(context.Background(), initial, m, SearchOptions{TimeBudget: budget})

	require.NoError(t, best.CheckPartition(60, 0))
	assert.True(t, stats.StoppedByTime)
	// One neighbourhood scan of this size is far below a second.
	assert.Less(t, stats.Elapsed, budget+time.Second)
	assert.Positive(t, stats.LocalOptima)
	assert.Positive(t, stats.Lambda)
}

func TestImproveStopsOnCancelledContext(t *testing.T) {
	m := randomMatrix(3, 20)
	initial, err := BuildInitialSolution(m, 2, 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	best, stats := Improve(ctx, initial, m, SearchOptions{TimeBudget: time.Hour})
	assert.True(t, stats.StoppedByTime)
	assert.Zero(t, stats.Moves)
	assert.Equal(t, initial.Routes, best.Routes)
}

func TestImproveTrivialInstances(t *testing.T) {
	single := domain.DistanceMatrix{{0, 5}, {5, 0}}
	best, stats := Improve(context.Background(), &domain.Solution{Routes: []domain.Route{{0, 0}, {0, 1, 0}}}, single,
		SearchOptions{TimeBudget: time.Hour})
	assert.Equal(t, []domain.Route{{0, 0}, {0, 1, 0}}, best.Routes)
	assert.Zero(t, stats.Moves)

	zero := domain.DistanceMatrix{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	_, stats = Improve(context.Background(), &domain.Solution{Routes: []domain.Route{{0, 1, 2, 0}}}, zero,
		SearchOptions{TimeBudget: time.Hour})
	assert.Zero(t, stats.BestCost)
	assert.Zero(t, stats.Moves)
}

func TestPenaltyLambda(t *testing.T) {
	m := squareMatrix()
	s := &domain.Solution{Routes: []domain.Route{{0, 1, 3, 2, 0}, {0, 0}}}

	// 4000 over 4 edges, scaled by 0.1.
	assert.Equal(t, 100, penaltyLambda(s, m, 4000, 0.1))
	assert.Equal(t, 1, penaltyLambda(s, m, 4, 0.1))
	assert.Equal(t, 1, penaltyLambda(domain.NewEmptySolution(2, 0), m, 0, 0.1))
}

func TestPenalizeMaxUtility(t *testing.T) {
	m := squareMatrix()
	s := &domain.Solution{Routes: []domain.Route{{0, 3, 1, 2, 0}}}
	p := newEdgePenalties(m.Size())

	penalizeMaxUtility(s, m, p)
	// 0-3 and 1-2 are the 1414 diagonals.
	assert.Equal(t, 1, p.get(0, 3))
	assert.Equal(t, 1, p.get(2, 1))
	assert.Equal(t, 0, p.get(3, 1))

	// 1414/2 < 1000/1, so the unit edges come next.
	penalizeMaxUtility(s, m, p)
	assert.Equal(t, 1, p.get(3, 1))
	assert.Equal(t, 1, p.get(2, 0))
	assert.Equal(t, 1, p.get(0, 3))
}
