package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"vehicle-route-optimizer/internal/domain"
	"vehicle-route-optimizer/internal/platform/obs"
)

// SQLMatrixCache is a SQL-backed cache of distance matrices, stored as JSON
// in the matrix_cache table.
type SQLMatrixCache struct {
	DB *sql.DB
}

func NewSQLMatrixCache(db *sql.DB) *SQLMatrixCache {
	return &SQLMatrixCache{DB: db}
}

// Fetch the cached matrix for key.
func (s *SQLMatrixCache) Get(
	ctx context.Context,
	key string,
) (_ domain.DistanceMatrix, _ bool, err error) {
	defer obs.Time(ctx, "matrix.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("matrix cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get matrix cache: key must not be empty")
	}

	q := `
	SELECT size, payload
    FROM matrix_cache
    WHERE cache_key = $1;
	`

	var (
		size    int
		payload []byte
	)
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&size, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get matrix cache: query matrix_cache table: %w", err)
	}

	var m domain.DistanceMatrix
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, false, fmt.Errorf("get matrix cache: decode payload: %w", err)
	}
	if m.Size() != size {
		return nil, false, fmt.Errorf("get matrix cache: stored size %d does not match payload size %d", size, m.Size())
	}

	return m, true, nil
}

// Store or replace the matrix for key.
func (s *SQLMatrixCache) Put(ctx context.Context, key string, m domain.DistanceMatrix) error {
	if s.DB == nil {
		return errors.New("matrix cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert matrix cache: key must not be empty")
	}

	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("insert matrix cache: encode: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO matrix_cache (cache_key, size, payload)
    VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET size = EXCLUDED.size,
		payload = EXCLUDED.payload,
		updated_at = now();
	`, key, m.Size(), string(payload))
	if err != nil {
		return fmt.Errorf("insert matrix cache key=%q: %w", key, err)
	}

	return nil
}
