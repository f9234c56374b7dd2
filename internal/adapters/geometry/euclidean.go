package geometry

import (
	"context"
	"errors"
	"math"

	"vehicle-route-optimizer/internal/domain"
)

// DefaultScale keeps two decimals of precision in integer distances.
const DefaultScale = 100

// EuclideanProvider builds matrices of straight-line distances multiplied by
// Scale and rounded to the nearest integer.
type EuclideanProvider struct {
	Scale float64
}

func NewEuclideanProvider() *EuclideanProvider { return &EuclideanProvider{Scale: DefaultScale} }

func (e *EuclideanProvider) Name() string { return "euclidean" }

func (e *EuclideanProvider) BuildMatrix(_ context.Context, points []domain.Point) (domain.DistanceMatrix, error) {
	if len(points) == 0 {
		return nil, errors.New("build euclidean matrix: no points")
	}

	scale := e.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	n := len(points)
	m := make(domain.DistanceMatrix, n)
	for i := range m {
		m[i] = make([]int, n)
	}

	// Fill the upper triangle and mirror it so the result is exactly symmetric.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := math.Hypot(points[i].X-points[j].X, points[i].Y-points[j].Y)
			v := int(math.Round(d * scale))
			m[i][j] = v
			m[j][i] = v
		}
	}

	return m, nil
}
