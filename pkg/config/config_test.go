package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnvVars clears all Dayflow-related environment variables.
func clearEnvVars() {
	envVars := []string{
		"APP_ENV", "LOG_LEVEL",
		"DAYFLOW_STORE", "DAYFLOW_SQLITE_PATH",
		"DATABASE_URL", "REDIS_URL",
		"DAYFLOW_12H_CLOCK",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "", cfg.SQLitePath)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.False(t, cfg.Use12HourClock)
}

func TestLoad_WithCustomEnvVars(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("APP_ENV", "production")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("DAYFLOW_STORE", "postgres")
	os.Setenv("DATABASE_URL", "postgres://u:p@db:5432/dayflow")
	os.Setenv("DAYFLOW_12H_CLOCK", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, "postgres://u:p@db:5432/dayflow", cfg.DatabaseURL)
	assert.True(t, cfg.Use12HourClock)
}

func TestLoad_InvalidBoolFallsBack(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("DAYFLOW_12H_CLOCK", "sometimes")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Use12HourClock)
}

func TestEnvironmentChecks(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		cfg := &Config{AppEnv: "development"}
		assert.True(t, cfg.IsDevelopment())
		assert.False(t, cfg.IsProduction())
	})

	t.Run("production", func(t *testing.T) {
		cfg := &Config{AppEnv: "production"}
		assert.False(t, cfg.IsDevelopment())
		assert.True(t, cfg.IsProduction())
	})
}
