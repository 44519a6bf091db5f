package config

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "LOG_PRETTY", "DB_PATH", "DATABASE_URL", "DATA_DIR", "SCENARIO_PATH"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, "data/app.db", cfg.DBPath)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "data/scenario.yaml", cfg.ScenarioPath)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("DATABASE_URL", "postgres://localhost/deliveries")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, "postgres://localhost/deliveries", cfg.DatabaseURL)
}

func TestLoad_BadBool(t *testing.T) {
	t.Setenv("LOG_PRETTY", "sometimes")

	_, err := Load(context.Background())
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	t.Setenv("SOME_KEY", "")
	assert.Equal(t, "fallback", Get("SOME_KEY", "fallback"))

	t.Setenv("SOME_KEY", "value")
	assert.Equal(t, "value", Get("SOME_KEY", "fallback"))
}
