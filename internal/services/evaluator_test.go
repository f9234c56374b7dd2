package services

import (
	"testing"

	"vehicle-route-optimizer/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRouteCost(t *testing.T) {
	m := squareMatrix()

	assert.Equal(t, 0, RouteCost(domain.Route{0, 0}, m))
	assert.Equal(t, 2000, RouteCost(domain.Route{0, 1, 0}, m))
	assert.Equal(t, 4000, RouteCost(domain.Route{0, 1, 3, 2, 0}, m))
	assert.Equal(t, 4828, RouteCost(domain.Route{0, 1, 2, 3, 0}, m))
}

func TestTotalCost(t *testing.T) {
	m := squareMatrix()
	s := &domain.Solution{Routes: []domain.Route{{0, 1, 0}, {0, 2, 3, 0}, {0, 0}}}

	assert.Equal(t, 2000+1000+1000+1414, TotalCost(s, m))
	assert.Equal(t, TotalCost(s, m), TotalRoutesCost(s.Routes, m))
}
