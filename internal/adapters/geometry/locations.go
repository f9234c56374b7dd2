package geometry

import (
	"context"
	"fmt"
	"math/rand"

	"vehicle-route-optimizer/internal/domain"
)

// UniformSquare generates a depot at the origin and customers drawn
// uniformly from the square [-Half, Half]².
type UniformSquare struct {
	Half float64
}

func NewUniformSquare() *UniformSquare { return &UniformSquare{Half: 10} }

// Locations returns numLocations points; points[0] is the depot.
// The same seed always yields the same points. No global random state is used.
func (u *UniformSquare) Locations(_ context.Context, numLocations int, seed int64) ([]domain.Point, error) {
	if numLocations < 2 {
		return nil, fmt.Errorf("generate locations: need at least 2 locations (1 depot + customers), got %d: %w",
			numLocations, domain.ErrInvalidInput)
	}
	if u.Half <= 0 {
		return nil, fmt.Errorf("generate locations: half-width must be positive, got %v", u.Half)
	}

	rng := rand.New(rand.NewSource(seed))

	points := make([]domain.Point, 0, numLocations)
	points = append(points, domain.Point{X: 0, Y: 0})
	for i := 1; i < numLocations; i++ {
		points = append(points, domain.Point{
			X: -u.Half + 2*u.Half*rng.Float64(),
			Y: -u.Half + 2*u.Half*rng.Float64(),
		})
	}

	return points, nil
}
