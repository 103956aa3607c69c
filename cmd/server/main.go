package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"field-rounds-service/internal/adapters/cache"
	"field-rounds-service/internal/adapters/kml"
	"field-rounds-service/internal/adapters/repositories"
	"field-rounds-service/internal/adapters/traveltime"
	"field-rounds-service/internal/api"
	"field-rounds-service/internal/api/handlers"
	"field-rounds-service/internal/platform/db"
	"field-rounds-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Google Maps) behind ports and starts
// the HTTP server. Without an API key the planner falls back to the offline
// great-circle estimator; geocoding and restaurant lookup are then disabled.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := getEnv("DB_PATH", "data/app.db")
	seedPath := getEnv("SEED_PATH", "data/seeds/stops.json")
	port := getEnv("PORT", "8080")

	sqliteDB, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(sqliteDB, seedPath); err != nil {
		log.Fatal(err)
	}

	travelCache, geocodeCache, err := buildCaches(sqliteDB)
	if err != nil {
		log.Fatal(err)
	}

	var (
		provider ports.TravelTimeProvider
		geocoder ports.Geocoder
		finder   ports.PlaceFinder
	)
	apiKey := strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY"))
	if apiKey != "" {
		google, err := traveltime.NewGoogleTravelProvider(apiKey, travelCache, geocodeCache)
		if err != nil {
			log.Fatal(err)
		}
		provider = google
		geocoder = google
		finder = google
	} else {
		log.Println("GOOGLE_MAPS_API_KEY not set; using offline great-circle estimates")
		provider = traveltime.NewGreatCircleEstimator()
	}

	repo := repositories.NewSqliteStopRepository(sqliteDB)

	state := handlers.NewPlannerState()
	if err := loadPool(state, repo); err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(state, provider, geocoder, finder, kml.NewImporter())

	// Timeouts are tuned for cold-cache plan computation (external API
	// latency plus the solver budget).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openDB(dbPath string) (*sql.DB, error) {
	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := sqliteDB.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return sqliteDB, nil
}

func initAndSeed(sqliteDB *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(sqliteDB); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); err != nil {
		log.Printf("seed file %q not found; starting with an empty stop table", seedPath)
		return nil
	}

	if err := repositories.SeedFromJSON(sqliteDB, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// buildCaches picks the cache backend: Redis when REDIS_ADDR is set, shared
// Postgres when DATABASE_URL is set, the local SQLite file otherwise.
// Geocode results always live next to the stop data.
func buildCaches(sqliteDB *sql.DB) (ports.TravelTimeCache, ports.GeocodeCache, error) {
	geocodeCache := cache.NewSqliteGeocodeCache(sqliteDB)

	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		log.Printf("travel cache backend=redis addr=%s", addr)
		return cache.NewRedisTravelTimeCache(client, 0), geocodeCache, nil
	}

	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("build caches: %w", err)
		}
		log.Println("travel cache backend=postgres")
		return cache.NewSQLTravelTimeCache(pg), cache.NewSQLGeocodeCache(pg), nil
	}

	log.Println("travel cache backend=sqlite")
	return cache.NewSqliteTravelTimeCache(sqliteDB), geocodeCache, nil
}

func loadPool(state *handlers.PlannerState, repo ports.StopRepository) error {
	stops, err := repo.ListStops(context.Background())
	if err != nil {
		return fmt.Errorf("load stop pool: %w", err)
	}
	state.SetPool(stops, nil)
	log.Printf("stop pool loaded count=%d", len(stops))
	return nil
}
