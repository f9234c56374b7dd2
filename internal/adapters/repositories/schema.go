package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for runs, their route steps, and the
// distance matrix cache. Statements are idempotent.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		num_locations INTEGER NOT NULL,
		num_vehicles INTEGER NOT NULL,
		seed BIGINT NOT NULL,
		distance_source TEXT NOT NULL,
		time_budget_ms BIGINT NOT NULL,
		naive_total BIGINT NOT NULL,
		optimized_total BIGINT NOT NULL,
		system_platform TEXT,
		system_cpu TEXT,
		system_memory TEXT
	);
	`

	createRouteStepsQuery := `
	CREATE TABLE IF NOT EXISTS run_route_steps (
        run_id UUID NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
        plan TEXT NOT NULL CHECK (plan IN ('naive', 'optimized')),
        vehicle_id INTEGER NOT NULL,
        step INTEGER NOT NULL,
        node INTEGER NOT NULL,
        x DOUBLE PRECISION NOT NULL,
        y DOUBLE PRECISION NOT NULL,
        PRIMARY KEY (run_id, plan, vehicle_id, step)
    );
	`

	createMatrixCacheQuery := `
	CREATE TABLE IF NOT EXISTS matrix_cache (
        cache_key TEXT PRIMARY KEY,
        size INTEGER NOT NULL,
        payload JSONB NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_runs_created_at
    ON runs(created_at DESC);
	`

	statements := []string{
		createRunsQuery,
		createRouteStepsQuery,
		createMatrixCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
