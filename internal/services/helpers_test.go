package services

import (
	"math"
	"math/rand"

	"vehicle-route-optimizer/internal/domain"
)

// squareMatrix is the four node instance with the depot at (0,0) and
// customers at (10,0), (0,10) and (10,10), scaled by 100.
func squareMatrix() domain.DistanceMatrix {
	return domain.DistanceMatrix{
		{0, 1000, 1000, 1414},
		{1000, 0, 1414, 1000},
		{1000, 1414, 0, 1000},
		{1414, 1000, 1000, 0},
	}
}

// randomMatrix returns a symmetric Euclidean matrix over n uniform points.
func randomMatrix(seed int64, n int) domain.DistanceMatrix {
	rng := rand.New(rand.NewSource(seed))
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range n {
		xs[i] = rng.Float64()*20 - 10
		ys[i] = rng.Float64()*20 - 10
	}

	m := make(domain.DistanceMatrix, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			d := int(math.Round(math.Hypot(xs[i]-xs[j], ys[i]-ys[j]) * 100))
			m[i][j], m[j][i] = d, d
		}
	}
	return m
}
