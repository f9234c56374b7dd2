package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceMatrixValidate(t *testing.T) {
	cases := []struct {
		name    string
		m       DistanceMatrix
		wantErr bool
	}{
		{name: "single node", m: DistanceMatrix{{0}}},
		{name: "symmetric", m: DistanceMatrix{{0, 3, 4}, {3, 0, 5}, {4, 5, 0}}},
		{name: "empty", m: DistanceMatrix{}, wantErr: true},
		{name: "ragged", m: DistanceMatrix{{0, 1}, {1}}, wantErr: true},
		{name: "non-zero diagonal", m: DistanceMatrix{{1, 2}, {2, 0}}, wantErr: true},
		{name: "asymmetric", m: DistanceMatrix{{0, 2}, {3, 0}}, wantErr: true},
		{name: "negative", m: DistanceMatrix{{0, -2}, {-2, 0}}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.m.Validate()
			if !tc.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput), "want ErrInvalidInput, got %v", err)
		})
	}
}

func TestValidateProblem(t *testing.T) {
	m := DistanceMatrix{{0, 1}, {1, 0}}

	require.NoError(t, ValidateProblem(m, 1, 0))
	require.NoError(t, ValidateProblem(m, 5, 1))
	require.ErrorIs(t, ValidateProblem(m, 0, 0), ErrInvalidInput)
	require.ErrorIs(t, ValidateProblem(m, 1, 2), ErrInvalidInput)
	require.ErrorIs(t, ValidateProblem(m, 1, -1), ErrInvalidInput)
}

func TestSolutionCheckPartition(t *testing.T) {
	ok := &Solution{Routes: []Route{{0, 2, 1, 0}, {0, 3, 0}, EmptyRoute(0)}}
	require.NoError(t, ok.CheckPartition(4, 0))
	assert.Equal(t, 3, ok.CustomerCount())

	missing := &Solution{Routes: []Route{{0, 2, 0}, {0, 3, 0}}}
	require.Error(t, missing.CheckPartition(4, 0))

	dup := &Solution{Routes: []Route{{0, 1, 2, 0}, {0, 2, 3, 0}}}
	require.Error(t, dup.CheckPartition(4, 0))

	badEnds := &Solution{Routes: []Route{{1, 2, 3, 0}}}
	require.Error(t, badEnds.CheckPartition(4, 0))

	depotInside := &Solution{Routes: []Route{{0, 1, 0, 2, 3, 0}}}
	require.Error(t, depotInside.CheckPartition(4, 0))
}

func TestSolutionCloneIsDeep(t *testing.T) {
	s := &Solution{Routes: []Route{{0, 1, 2, 0}}}
	c := s.Clone()
	c.Routes[0][1] = 2
	c.Routes[0][2] = 1

	assert.Equal(t, Route{0, 1, 2, 0}, s.Routes[0])
}

func TestImprovementPercent(t *testing.T) {
	assert.Nil(t, ImprovementPercent(0, 0))

	pct := ImprovementPercent(3000, 2000)
	require.NotNil(t, pct)
	assert.InDelta(t, 33.33, *pct, 1e-9)

	same := ImprovementPercent(1000, 1000)
	require.NotNil(t, same)
	assert.Zero(t, *same)
}
