package main

import (
	"context"
	"database/sql"
	"delivery-simulation-service/internal/adapters/csvsource"
	"delivery-simulation-service/internal/adapters/repositories"
	"delivery-simulation-service/internal/api"
	"delivery-simulation-service/internal/config"
	"delivery-simulation-service/internal/platform/db"
	"delivery-simulation-service/internal/platform/logger"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, CSV seed data) behind ports
// and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	if envErr != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	conn, dialect, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer conn.Close()

	// Initialize schema and seed the day's data on startup for local runs.
	if err := initAndSeed(ctx, conn, dialect, cfg.DataDir); err != nil {
		log.Fatal().Err(err).Msg("init and seed")
	}

	scenario, err := config.LoadScenario(cfg.ScenarioPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ScenarioPath).Msg("load scenario")
	}

	router := api.NewRouter(api.Deps{
		Packages:  repositories.NewSQLPackageRepository(conn, log),
		Locations: repositories.NewSQLLocationRepository(conn, log),
		Scenario:  scenario,
		Log:       log,
	})

	log.Info().
		Str("addr", ":"+cfg.Port).
		Str("store", string(dialect)).
		Str("depot", scenario.Depot).
		Int("vehicles", len(scenario.Vehicles)).
		Msg("server listening")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// openStore uses Postgres when DATABASE_URL is set and the SQLite file
// otherwise.
func openStore(ctx context.Context, cfg *config.Config) (*sql.DB, repositories.Dialect, error) {
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		return conn, repositories.Postgres, err
	}
	conn, err := db.OpenSQLite(ctx, cfg.DBPath)
	return conn, repositories.SQLite, err
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect repositories.Dialect, dataDir string) error {
	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	src := csvsource.New(dataDir)
	if err := repositories.Seed(ctx, conn, dialect, src, src); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

