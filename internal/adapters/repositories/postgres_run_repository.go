package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vehicle-route-optimizer/internal/domain"
	"vehicle-route-optimizer/internal/platform/obs"
)

const (
	planNaive     = "naive"
	planOptimized = "optimized"
)

// Postgres-backed implementation of the RunRepository port.
// Route steps are stored one row per visited node, mirroring the per-vehicle
// CSV export.
type PostgresRunRepository struct{ DB *sql.DB }

func NewPostgresRunRepository(db *sql.DB) *PostgresRunRepository {
	return &PostgresRunRepository{DB: db}
}

// Persist the run row and every route step in a single transaction.
func (p *PostgresRunRepository) SaveRun(ctx context.Context, run *domain.Run) (err error) {
	defer obs.Time(ctx, "runs.SaveRun")(&err)

	if p.DB == nil {
		return errors.New("postgres run repository: DB is nil")
	}
	if run == nil || run.ID == "" {
		return errors.New("save run: run id must be non-empty")
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var platform, cpu, memory sql.NullString
	if run.System != nil {
		platform = sql.NullString{String: run.System.Platform, Valid: true}
		cpu = sql.NullString{String: run.System.CPU, Valid: true}
		memory = sql.NullString{String: run.System.Memory, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO runs (
		run_id, created_at, num_locations, num_vehicles, seed, distance_source,
		time_budget_ms, naive_total, optimized_total,
		system_platform, system_cpu, system_memory
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`,
		run.ID, run.CreatedAt, run.NumLocations, run.NumVehicles, run.Seed, run.DistanceSource,
		run.TimeBudget.Milliseconds(), run.NaiveTotal, run.OptimizedTotal,
		platform, cpu, memory,
	)
	if err != nil {
		return fmt.Errorf("save run: insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO run_route_steps (run_id, plan, vehicle_id, step, node, x, y)
    VALUES ($1, $2, $3, $4, $5, $6, $7);
	`)
	if err != nil {
		return fmt.Errorf("save run: db prepare: %w", err)
	}
	defer stmt.Close()

	plans := []struct {
		name   string
		routes []domain.Route
	}{
		{planNaive, run.NaiveRoutes},
		{planOptimized, run.OptimizedRoutes},
	}

	for _, plan := range plans {
		for vid, route := range plan.routes {
			for step, node := range route {
				if node < 0 || node >= len(run.Points) {
					return fmt.Errorf("save run: %s vehicle %d step %d: node %d has no coordinates", plan.name, vid, step, node)
				}
				pt := run.Points[node]
				if _, err := stmt.ExecContext(ctx, run.ID, plan.name, vid, step, node, pt.X, pt.Y); err != nil {
					return fmt.Errorf("save run: insert %s step vehicle=%d step=%d: %w", plan.name, vid, step, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run: commit: %w", err)
	}

	return nil
}

// Return the most recent run summaries, newest first.
func (p *PostgresRunRepository) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if p.DB == nil {
		return nil, errors.New("postgres run repository: DB is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT
		run_id,
		created_at,
		num_locations,
		num_vehicles,
		seed,
		distance_source,
		naive_total,
		optimized_total
	FROM runs
	ORDER BY created_at DESC
	LIMIT $1;
	`
	rows, err := p.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.RunSummary, 0, limit)
	for rows.Next() {
		var s domain.RunSummary
		if err := rows.Scan(
			&s.ID, &s.CreatedAt, &s.NumLocations, &s.NumVehicles, &s.Seed,
			&s.DistanceSource, &s.NaiveTotal, &s.OptimizedTotal,
		); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		s.ImprovementPercent = domain.ImprovementPercent(s.NaiveTotal, s.OptimizedTotal)
		runs = append(runs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}

// Return one run with its points and both route sets.
func (p *PostgresRunRepository) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	if p.DB == nil {
		return nil, errors.New("postgres run repository: DB is nil")
	}

	var (
		run                   domain.Run
		budgetMS              int64
		platform, cpu, memory sql.NullString
	)
	err := p.DB.QueryRowContext(ctx, `
	SELECT
		run_id, created_at, num_locations, num_vehicles, seed, distance_source,
		time_budget_ms, naive_total, optimized_total,
		system_platform, system_cpu, system_memory
	FROM runs
	WHERE run_id = $1;
	`, id).Scan(
		&run.ID, &run.CreatedAt, &run.NumLocations, &run.NumVehicles, &run.Seed, &run.DistanceSource,
		&budgetMS, &run.NaiveTotal, &run.OptimizedTotal,
		&platform, &cpu, &memory,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run %s: %w", id, domain.ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: query runs table: %w", id, err)
	}
	run.TimeBudget = time.Duration(budgetMS) * time.Millisecond
	if platform.Valid {
		run.System = &domain.SysInfo{Platform: platform.String, CPU: cpu.String, Memory: memory.String}
	}

	rows, err := p.DB.QueryContext(ctx, `
	SELECT plan, vehicle_id, step, node, x, y
	FROM run_route_steps
	WHERE run_id = $1
	ORDER BY plan, vehicle_id, step;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get run %s: query route steps: %w", id, err)
	}
	defer rows.Close()

	run.Points = make([]domain.Point, run.NumLocations)
	run.NaiveRoutes = make([]domain.Route, run.NumVehicles)
	run.OptimizedRoutes = make([]domain.Route, run.NumVehicles)

	for rows.Next() {
		var (
			plan            string
			vid, step, node int
			x, y            float64
		)
		if err := rows.Scan(&plan, &vid, &step, &node, &x, &y); err != nil {
			return nil, fmt.Errorf("get run %s: scan route step: %w", id, err)
		}
		if vid < 0 || vid >= run.NumVehicles || node < 0 || node >= run.NumLocations {
			return nil, fmt.Errorf("get run %s: route step out of range vehicle=%d node=%d", id, vid, node)
		}

		run.Points[node] = domain.Point{X: x, Y: y}
		switch plan {
		case planNaive:
			run.NaiveRoutes[vid] = append(run.NaiveRoutes[vid], node)
		case planOptimized:
			run.OptimizedRoutes[vid] = append(run.OptimizedRoutes[vid], node)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get run %s: row iteration: %w", id, err)
	}

	return &run, nil
}
