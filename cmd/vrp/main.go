package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"vehicle-route-optimizer/internal/adapters/cache"
	"vehicle-route-optimizer/internal/adapters/distance"
	"vehicle-route-optimizer/internal/adapters/geometry"
	"vehicle-route-optimizer/internal/adapters/report"
	"vehicle-route-optimizer/internal/adapters/repositories"
	"vehicle-route-optimizer/internal/config"
	"vehicle-route-optimizer/internal/domain"
	"vehicle-route-optimizer/internal/platform/db"
	"vehicle-route-optimizer/internal/platform/redis"
	"vehicle-route-optimizer/internal/platform/sysinfo"
	"vehicle-route-optimizer/internal/ports"
	"vehicle-route-optimizer/internal/services"

	"github.com/urfave/cli"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	config.Load()

	app := cli.NewApp()
	app.Name = "vrp"
	app.Usage = "compare a naive vehicle split with guided local search on one instance"
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "num_locations", Value: 50, Usage: "locations including the depot"},
		cli.IntFlag{Name: "num_vehicles", Value: 5, Usage: "vehicles leaving the depot"},
		cli.Int64Flag{Name: "seed", Value: 42, Usage: "seed for the generated instance"},
		cli.StringFlag{Name: "outputs_dir", Value: "outputs", Usage: "directory for CSV, SVG and summary files"},
		cli.DurationFlag{
			Name:  "time_budget",
			Value: config.GetDuration("OPTIMIZER_TIME_BUDGET", services.DefaultTimeBudget),
			Usage: "search time limit",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: config.GetInt("OPTIMIZER_WORKERS", sysinfo.DefaultWorkers()),
			Usage: "parallel searches",
		},
		cli.StringFlag{Name: "instance", Usage: "JSON file of {x, y} points, depot first; overrides num_locations and seed"},
		cli.StringFlag{Name: "distance_source", Value: "euclidean", Usage: "euclidean or ors (needs ORS_API_KEY and lon/lat points)"},
		cli.BoolFlag{Name: "save", Usage: "store the run in Postgres (needs DATABASE_URL)"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	ctx := context.Background()

	req := services.RunExperimentRequest{
		NumLocations: c.Int("num_locations"),
		NumVehicles:  c.Int("num_vehicles"),
		Seed:         c.Int64("seed"),
		Optimize: services.Options{
			TimeBudget: c.Duration("time_budget"),
			Workers:    c.Int("workers"),
		},
		System: sysinfo.Collect(),
	}

	if path := c.String("instance"); path != "" {
		points, err := geometry.LoadPoints(path)
		if err != nil {
			return err
		}
		req.Points = points
	}

	provider, closeProvider, err := newProvider(ctx, c.String("distance_source"))
	if err != nil {
		return err
	}
	defer closeProvider()

	var repo ports.RunRepository
	if c.Bool("save") {
		databaseURL := config.Get("DATABASE_URL", "")
		if databaseURL == "" {
			return errors.New("vrp: --save needs DATABASE_URL")
		}
		sqlDB, err := db.Open(databaseURL)
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		if err := repositories.InitSchema(sqlDB); err != nil {
			return err
		}
		repo = repositories.NewPostgresRunRepository(sqlDB)
	}

	result, err := services.RunExperiment(ctx, req, geometry.NewUniformSquare(), provider, repo)
	if err != nil {
		return err
	}

	if err := writeOutputs(c.String("outputs_dir"), result); err != nil {
		return err
	}

	printSummary(result, c.String("outputs_dir"))
	return nil
}

// newProvider returns the matrix provider for source and a cleanup func.
func newProvider(ctx context.Context, source string) (ports.MatrixProvider, func(), error) {
	switch source {
	case "euclidean":
		return geometry.NewEuclideanProvider(), func() {}, nil

	case "ors":
		var matrixCache ports.MatrixCache
		cleanup := func() {}
		if redisURL := config.Get("REDIS_URL", ""); redisURL != "" {
			openCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			client, err := redis.Open(openCtx, redisURL)
			cancel()
			if err != nil {
				return nil, nil, err
			}
			matrixCache = cache.NewRedisMatrixCache(client, config.GetDuration("MATRIX_CACHE_TTL", 7*24*time.Hour))
			cleanup = func() { _ = client.Close() }
		}

		provider, err := distance.NewORSMatrixProvider(config.Get("ORS_API_KEY", ""), matrixCache)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("vrp: distance source ors: %w", err)
		}
		return provider, cleanup, nil
	}

	return nil, nil, fmt.Errorf("vrp: unknown distance source %q", source)
}

func writeOutputs(dir string, run *domain.Run) error {
	if _, err := report.WriteRouteCSVs(dir, "routes_naive", run.NaiveRoutes, run.Points); err != nil {
		return err
	}
	if _, err := report.WriteRouteCSVs(dir, "routes_optimized", run.OptimizedRoutes, run.Points); err != nil {
		return err
	}

	if err := report.WriteRoutesSVG(filepath.Join(dir, "naive_routes.svg"), "Naive routes", run.Points, run.NaiveRoutes); err != nil {
		return err
	}
	if err := report.WriteRoutesSVG(filepath.Join(dir, "optimized_routes.svg"), "Optimized routes", run.Points, run.OptimizedRoutes); err != nil {
		return err
	}

	return report.WriteSummaryJSON(filepath.Join(dir, "summary.json"), report.NewSummaryRecord(run))
}

func printSummary(run *domain.Run, dir string) {
	p := message.NewPrinter(language.English)
	s := run.Summary()

	p.Printf("Run %s (%s)\n", s.ID, s.DistanceSource)
	p.Printf("  locations: %d  vehicles: %d  seed: %d\n", s.NumLocations, s.NumVehicles, s.Seed)
	p.Printf("  naive total:     %d\n", s.NaiveTotal)
	p.Printf("  optimized total: %d\n", s.OptimizedTotal)
	if s.ImprovementPercent != nil {
		p.Printf("  improvement:     %.2f%%\n", *s.ImprovementPercent)
	}
	p.Printf("  outputs:         %s\n", dir)
}
