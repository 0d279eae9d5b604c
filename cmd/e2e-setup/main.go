package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"travel-planner/internal/config"
	"travel-planner/internal/domain/model"
	"travel-planner/internal/infra/db/postgres"
	"travel-planner/internal/infra/redis"

	"github.com/jackc/pgx/v4/pgxpool"
)

// This script sets up a clean, predictable database state for manual
// end-to-end testing against cmd/plannersim.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	schemaPath := flag.String("schema", filepath.Join("deploy", "postgres", "init.sql"), "path to schema file")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	// --- Connect to Postgres ---
	pool, err := postgres.NewPgxPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("postgres connection failed: %v", err)
	}
	defer pool.Close()

	// --- Connect to Redis ---
	redisClient, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}
	defer redisClient.Close()

	log.Println("--- Starting E2E Environment Setup ---")

	// 1. Clean the Redis cache to remove any stale job snapshots.
	log.Println("[1/4] Wiping Redis cache...")
	if err := redisClient.FlushDB(ctx); err != nil {
		log.Fatalf("failed to flush redis: %v", err)
	}

	// 2. Apply the schema so a fresh database also works.
	log.Println("[2/4] Applying schema...")
	schema, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalf("read schema: %v", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("apply schema: %v", err)
	}

	// 3. Clean all existing data.
	log.Println("[3/4] Wiping all existing database data...")
	_, err = pool.Exec(ctx, `
		TRUNCATE
			plan_jobs, itineraries, trips, achievements, mood_entries,
			scrapbook_entries, travel_groups, group_members
		RESTART IDENTITY CASCADE;
	`)
	if err != nil {
		log.Fatalf("failed to truncate tables: %v", err)
	}

	// 4. Seed a couple of trips so list endpoints have content.
	log.Println("[4/4] Seeding test trips...")
	seedTrips(ctx, pool)

	log.Println("--- E2E Environment Setup Complete ---")
}

func seedTrips(ctx context.Context, pool *pgxpool.Pool) {
	tripRepo := postgres.NewTripRepo(pool)

	start := time.Now().AddDate(0, 1, 0)
	lisbon, err := model.NewTrip("e2e-user", "Lisbon Long Weekend", "Lisbon", start, start.AddDate(0, 0, 3))
	if err != nil {
		log.Fatalf("build trip: %v", err)
	}
	lisbon.Status = model.TripPlanned
	if err := tripRepo.Save(ctx, nil, lisbon); err != nil {
		log.Printf("failed to save lisbon trip: %v", err)
	}

	kyoto, err := model.NewTrip("e2e-user", "Kyoto in Autumn", "Kyoto", start.AddDate(0, 2, 0), start.AddDate(0, 2, 10))
	if err != nil {
		log.Fatalf("build trip: %v", err)
	}
	if err := tripRepo.Save(ctx, nil, kyoto); err != nil {
		log.Printf("failed to save kyoto trip: %v", err)
	}
}
