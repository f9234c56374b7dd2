package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"vehicle-route-optimizer/internal/adapters/cache"
	"vehicle-route-optimizer/internal/adapters/distance"
	"vehicle-route-optimizer/internal/adapters/geometry"
	"vehicle-route-optimizer/internal/adapters/repositories"
	"vehicle-route-optimizer/internal/api"
	"vehicle-route-optimizer/internal/config"
	"vehicle-route-optimizer/internal/platform/db"
	"vehicle-route-optimizer/internal/platform/redis"
	"vehicle-route-optimizer/internal/platform/sysinfo"
	"vehicle-route-optimizer/internal/ports"
	"vehicle-route-optimizer/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS) behind ports and starts the HTTP server.
// Every backing service is optional; without them runs are computed but not stored.
func main() {
	config.Load()

	port := config.Get("PORT", "8080")

	deps := api.Deps{
		Locations: geometry.NewUniformSquare(),
		Providers: map[string]ports.MatrixProvider{"euclidean": geometry.NewEuclideanProvider()},
		Defaults: services.Options{
			TimeBudget: config.GetDuration("OPTIMIZER_TIME_BUDGET", services.DefaultTimeBudget),
			Workers:    config.GetInt("OPTIMIZER_WORKERS", sysinfo.DefaultWorkers()),
		},
		System: sysinfo.Collect(),
	}

	var matrixCache ports.MatrixCache

	if databaseURL := config.Get("DATABASE_URL", ""); databaseURL != "" {
		sqlDB, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer sqlDB.Close()

		if err := repositories.InitSchema(sqlDB); err != nil {
			log.Fatal(err)
		}
		deps.Repo = repositories.NewPostgresRunRepository(sqlDB)
		matrixCache = cache.NewSQLMatrixCache(sqlDB)
		log.Println("Run storage: postgres")
	} else {
		log.Println("DATABASE_URL not set; runs will not be stored")
	}

	if redisURL := config.Get("REDIS_URL", ""); redisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := redis.Open(ctx, redisURL)
		cancel()
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()

		// Redis takes precedence over the Postgres table for matrix caching.
		matrixCache = cache.NewRedisMatrixCache(client, config.GetDuration("MATRIX_CACHE_TTL", 7*24*time.Hour))
		log.Println("Matrix cache: redis")
	}

	if orsKey := config.Get("ORS_API_KEY", ""); orsKey != "" {
		provider, err := distance.NewORSMatrixProvider(orsKey, matrixCache)
		if err != nil {
			log.Fatal(err)
		}
		deps.Providers["ors"] = provider
		log.Printf("Distance source enabled: %s", provider.Name())
	}

	router := api.NewRouter(deps)

	// Write timeout leaves room for the largest accepted time budget plus matrix building.
	log.Printf(
		"Server listening addr=:%s time_budget=%s workers=%d",
		port, deps.Defaults.TimeBudget, deps.Defaults.Workers,
	)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
