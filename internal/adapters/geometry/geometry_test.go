package geometry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vehicle-route-optimizer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformSquareIsDeterministic(t *testing.T) {
	g := NewUniformSquare()

	a, err := g.Locations(context.Background(), 20, 42)
	require.NoError(t, err)
	b, err := g.Locations(context.Background(), 20, 42)
	require.NoError(t, err)
	c, err := g.Locations(context.Background(), 20, 43)
	require.NoError(t, err)

	require.Len(t, a, 20)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, domain.Point{}, a[0])

	for _, p := range a[1:] {
		assert.True(t, p.X >= -10 && p.X <= 10, "x out of range: %v", p.X)
		assert.True(t, p.Y >= -10 && p.Y <= 10, "y out of range: %v", p.Y)
	}
}

func TestUniformSquareRejectsTooFewLocations(t *testing.T) {
	_, err := NewUniformSquare().Locations(context.Background(), 1, 42)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEuclideanProviderScalesAndRounds(t *testing.T) {
	points := []domain.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}}

	m, err := NewEuclideanProvider().BuildMatrix(context.Background(), points)
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	want := domain.DistanceMatrix{
		{0, 1000, 1000, 1414},
		{1000, 0, 1414, 1000},
		{1000, 1414, 0, 1000},
		{1414, 1000, 1000, 0},
	}
	assert.Equal(t, want, m)
	assert.Equal(t, "euclidean", NewEuclideanProvider().Name())
}

func TestLoadPoints(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "instance.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"x":0,"y":0},{"x":1.5,"y":-2}]`), 0o644))

	points, err := LoadPoints(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Point{{X: 0, Y: 0}, {X: 1.5, Y: -2}}, points)

	short := filepath.Join(dir, "short.json")
	require.NoError(t, os.WriteFile(short, []byte(`[{"x":0,"y":0}]`), 0o644))
	_, err = LoadPoints(short)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = LoadPoints(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
