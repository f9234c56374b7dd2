package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"vehicle-route-optimizer/internal/domain"
)

type matrixRequest struct {
	Locations [][]float64 `json:"locations"`
	Metrics   []string    `json:"metrics"`
	Units     string      `json:"units"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
}

// fetchMatrix retrieves the all-to-all distance matrix for points from the
// OpenRouteService matrix endpoint and symmetrizes it.
func (o *ORSMatrixProvider) fetchMatrix(
	ctx context.Context,
	points []domain.Point,
) (domain.DistanceMatrix, error) {
	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	locations := make([][]float64, 0, len(points))
	for _, p := range points {
		locations = append(locations, p.LonLat())
	}

	payload, err := json.Marshal(matrixRequest{
		Locations: locations,
		Metrics:   []string{"distance"},
		Units:     "m",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	return symmetrize(mr.Distances, len(points))
}

// symmetrize converts raw road distances into the integer matrix the
// optimizer expects: d[i][j] = d[j][i] = round((raw[i][j]+raw[j][i])/2) and a
// zero diagonal. Missing entries mean ORS found no route.
func symmetrize(raw [][]*float64, n int) (domain.DistanceMatrix, error) {
	if len(raw) != n {
		return nil, fmt.Errorf("expected %d matrix rows, got %d", n, len(raw))
	}
	for i, row := range raw {
		if len(row) != n {
			return nil, fmt.Errorf("matrix row %d has %d entries, want %d", i, len(row), n)
		}
	}

	m := make(domain.DistanceMatrix, n)
	for i := range m {
		m[i] = make([]int, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := raw[i][j], raw[j][i]
			if a == nil || b == nil {
				return nil, fmt.Errorf("matrix returned no distance between locations %d and %d", i, j)
			}
			if *a < 0 || *b < 0 {
				return nil, fmt.Errorf("matrix returned negative distance between locations %d and %d", i, j)
			}

			// ORS returns float metrics; round to nearest integer for domain consistency.
			v := int(math.Round((*a + *b) / 2))
			m[i][j] = v
			m[j][i] = v
		}
	}

	return m, nil
}
