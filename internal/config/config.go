package config

import (
	"context"
	"fmt"
	"os"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string `env:"PORT,          default=8080"`
	LogLevel    string `env:"LOG_LEVEL,     default=info"`
	LogPretty   bool   `env:"LOG_PRETTY,    default=false"`
	DBPath      string `env:"DB_PATH,       default=data/app.db"`
	DatabaseURL string `env:"DATABASE_URL"`
	DataDir     string `env:"DATA_DIR,      default=data"`
	// ScenarioPath may point at a missing file; the built-in scenario is used
	// then.
	ScenarioPath string `env:"SCENARIO_PATH, default=data/scenario.yaml"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: load configuration: %w", err)
	}
	return &cfg, nil
}

// Get returns the environment value for key, or fallback when it is unset or
// empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
