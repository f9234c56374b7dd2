package geometry

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"vehicle-route-optimizer/internal/domain"
)

type PointSeed struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LoadPoints reads an instance file: a JSON array of {"x":..,"y":..}
// objects, depot first.
func LoadPoints(jsonPath string) ([]domain.Point, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load points: read %q: %w", jsonPath, err)
	}

	var data []PointSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load points: parse json: %w", err)
	}

	if len(data) < 2 {
		return nil, fmt.Errorf("load points: need a depot and at least one customer, got %d points: %w",
			len(data), domain.ErrInvalidInput)
	}

	points := make([]domain.Point, 0, len(data))
	for i, item := range data {
		if math.IsNaN(item.X) || math.IsNaN(item.Y) || math.IsInf(item.X, 0) || math.IsInf(item.Y, 0) {
			return nil, fmt.Errorf("load points: point at index %d is not finite: %w", i, domain.ErrInvalidInput)
		}
		points = append(points, domain.Point{X: item.X, Y: item.Y})
	}

	return points, nil
}
