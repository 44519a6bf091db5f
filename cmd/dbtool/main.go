package main

import (
	"context"
	"database/sql"
	"delivery-simulation-service/internal/adapters/csvsource"
	"delivery-simulation-service/internal/adapters/repositories"
	"delivery-simulation-service/internal/config"
	"delivery-simulation-service/internal/platform/db"
	"delivery-simulation-service/internal/platform/logger"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// dbtool prepares a Postgres input store: it creates the schema and loads
// packages, locations and distances from the CSV data directory.
func main() {
	envErr := godotenv.Load()

	log := logger.Init(logger.Options{
		Level:  config.Get("LOG_LEVEL", "info"),
		Pretty: true,
	})
	if envErr != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	dataDir := config.Get("DATA_DIR", "data")
	if err := initAndSeed(ctx, conn, dataDir, log); err != nil {
		log.Fatal().Err(err).Msg("dbtool failed")
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, dataDir string, log zerolog.Logger) error {
	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, conn, repositories.Postgres); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Info().Msg("schema ready")

	log.Info().Str("data_dir", dataDir).Msg("seeding database")
	src := csvsource.New(dataDir)
	if err := repositories.Seed(ctx, conn, repositories.Postgres, src, src); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Info().Msg("seeding complete")

	return nil
}
