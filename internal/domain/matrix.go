package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks malformed optimizer input. Callers test for it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// DistanceMatrix holds integer travel distances between nodes.
// Entry [i][j] is the distance from node i to node j.
// A valid matrix is square, symmetric, non-negative and has a zero diagonal.
type DistanceMatrix [][]int

// Size returns the number of nodes (depot included).
func (m DistanceMatrix) Size() int { return len(m) }

// At returns the distance between nodes i and j.
func (m DistanceMatrix) At(i, j int) int { return m[i][j] }

// Validate checks the structural invariants of the matrix.
// Triangle inequality is not required.
func (m DistanceMatrix) Validate() error {
	n := len(m)
	if n == 0 {
		return fmt.Errorf("validate matrix: matrix must contain at least one node: %w", ErrInvalidInput)
	}

	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("validate matrix: row %d has %d columns, want %d: %w", i, len(row), n, ErrInvalidInput)
		}
	}

	for i := 0; i < n; i++ {
		if m[i][i] != 0 {
			return fmt.Errorf("validate matrix: diagonal entry [%d][%d]=%d must be zero: %w", i, i, m[i][i], ErrInvalidInput)
		}
		for j := i + 1; j < n; j++ {
			if m[i][j] < 0 {
				return fmt.Errorf("validate matrix: negative distance [%d][%d]=%d: %w", i, j, m[i][j], ErrInvalidInput)
			}
			if m[i][j] != m[j][i] {
				return fmt.Errorf(
					"validate matrix: asymmetric entries [%d][%d]=%d and [%d][%d]=%d: %w",
					i, j, m[i][j], j, i, m[j][i], ErrInvalidInput,
				)
			}
		}
	}

	return nil
}

// ValidateProblem checks the matrix together with the fleet parameters.
func ValidateProblem(m DistanceMatrix, numVehicles, depot int) error {
	if err := m.Validate(); err != nil {
		return err
	}

	if numVehicles < 1 {
		return fmt.Errorf("validate problem: num_vehicles=%d must be at least 1: %w", numVehicles, ErrInvalidInput)
	}

	if depot < 0 || depot >= m.Size() {
		return fmt.Errorf("validate problem: depot=%d out of range [0,%d): %w", depot, m.Size(), ErrInvalidInput)
	}

	return nil
}
