package main

import (
	"log"

	"vehicle-route-optimizer/internal/adapters/repositories"
	"vehicle-route-optimizer/internal/config"
	"vehicle-route-optimizer/internal/platform/db"
)

func main() {
	config.Load()

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	sqlDB, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(sqlDB); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
