package distance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"vehicle-route-optimizer/internal/adapters/cache"
	"vehicle-route-optimizer/internal/domain"
	"vehicle-route-optimizer/internal/platform/obs"
	"vehicle-route-optimizer/internal/ports"
)

// ORSMatrixProvider implements MatrixProvider using the OpenRouteService
// matrix API. Points are interpreted as (lon, lat).
//
// It coordinates:
//   - Persistent matrix caching keyed by profile and point set
//   - One all-to-all matrix request per cache miss
//   - Retry with exponential backoff for transient failures
//   - Symmetrization of the road distances the optimizer requires
//
// The provider is safe for concurrent use.
type ORSMatrixProvider struct {
	session        *http.Client
	apiKey         string
	baseURL        string
	profile        string
	cache          ports.MatrixCache
	maxAttempts    int
	initialBackoff time.Duration
}

func NewORSMatrixProvider(apiKey string, matrixCache ports.MatrixCache) (*ORSMatrixProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSMatrixProvider{
		session:        &http.Client{Timeout: 30 * time.Second},
		apiKey:         apiKey,
		baseURL:        "https://api.openrouteservice.org",
		profile:        "driving-car",
		cache:          matrixCache,
		maxAttempts:    4,
		initialBackoff: 200 * time.Millisecond,
	}

	return provider, nil
}

func (o *ORSMatrixProvider) Name() string { return "ors:" + o.profile }

// BuildMatrix returns the symmetric road-distance matrix in meters.
func (o *ORSMatrixProvider) BuildMatrix(
	ctx context.Context,
	points []domain.Point,
) (_ domain.DistanceMatrix, err error) {
	defer obs.Time(ctx, "ors.BuildMatrix")(&err)

	if len(points) == 0 {
		return nil, errors.New("build ORS matrix: no points")
	}
	if len(points) == 1 {
		return domain.DistanceMatrix{{0}}, nil
	}

	key := cache.MatrixKey(o.Name(), points)

	// Check persistent matrix cache before issuing external API calls.
	if o.cache != nil {
		m, ok, err := o.cache.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("ORS get matrix cache: %w", err)
		}
		if ok && m.Size() == len(points) {
			return m, nil
		}
	}

	m, err := o.fetchMatrix(ctx, points)
	if err != nil {
		return nil, fmt.Errorf("fetching matrix: %w", err)
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, key, m); err != nil {
			log.Printf("matrix cache write failed: %v", err)
		}
	}

	return m, nil
}
