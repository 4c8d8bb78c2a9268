package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DB_DSN", "DB_AUTO_MIGRATE", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
		"LOG_LEVEL", "LOG_FORMAT", "APP_NAME",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.Database.DSN)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "clinical-records", cfg.Log.App)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", "postgres://clinic:secret@db:5432/clinic?sslmode=disable")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "postgres://clinic:secret@db:5432/clinic?sslmode=disable", cfg.Database.DSN)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_RejectsInvalidNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "http")
	_, err := Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("DB_MAX_IDLE_CONNS", "-1")
	_, err = Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("DB_AUTO_MIGRATE", "maybe")
	_, err = Load()
	assert.Error(t, err)
}
