package services

import (
	"testing"

	"vehicle-route-optimizer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInitialSolutionSquare(t *testing.T) {
	sol, err := BuildInitialSolution(squareMatrix(), 1, 0)
	require.NoError(t, err)

	// Customer 1 opens the route, then 2 wins the tie with 3 on index.
	assert.Equal(t, []domain.Route{{0, 1, 2, 3, 0}}, sol.Routes)
}

func TestBuildInitialSolutionPartitions(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		vehicles int
		depot    int
	}{
		{"one vehicle", 30, 1, 0},
		{"several vehicles", 40, 4, 0},
		{"more vehicles than customers", 4, 8, 0},
		{"depot not first", 25, 3, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := randomMatrix(int64(tt.n*31+tt.vehicles), tt.n)

			sol, err := BuildInitialSolution(m, tt.vehicles, tt.depot)
			require.NoError(t, err)
			require.Len(t, sol.Routes, tt.vehicles)
			require.NoError(t, sol.CheckPartition(tt.n, tt.depot))
			assert.Equal(t, tt.n-1, sol.CustomerCount())
		})
	}
}

func TestBuildInitialSolutionIsDeterministic(t *testing.T) {
	m := randomMatrix(7, 50)

	a, err := BuildInitialSolution(m, 5, 0)
	require.NoError(t, err)
	b, err := BuildInitialSolution(m, 5, 0)
	require.NoError(t, err)

	assert.Equal(t, a.Routes, b.Routes)
}

func TestBuildInitialSolutionPadsUnusedVehicles(t *testing.T) {
	sol, err := BuildInitialSolution(squareMatrix(), 6, 0)
	require.NoError(t, err)
	require.Len(t, sol.Routes, 6)

	empty := 0
	for _, r := range sol.Routes {
		if r.IsEmpty() {
			assert.Equal(t, domain.EmptyRoute(0), r)
			empty++
		}
	}
	assert.GreaterOrEqual(t, empty, 3)
}

func TestBuildInitialSolutionDepotOnly(t *testing.T) {
	sol, err := BuildInitialSolution(domain.DistanceMatrix{{0}}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []domain.Route{{0, 0}, {0, 0}}, sol.Routes)
}

func TestBuildInitialSolutionRejectsInvalidInput(t *testing.T) {
	_, err := BuildInitialSolution(squareMatrix(), 0, 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = BuildInitialSolution(squareMatrix(), 1, 4)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = BuildInitialSolution(domain.DistanceMatrix{{0, 1}, {2, 0}}, 1, 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
