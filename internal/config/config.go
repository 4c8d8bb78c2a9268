package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the configuration values for the application.
type Config struct {
	Port string

	Database struct {
		// DSN vacío => gateway in-memory (modo dev).
		DSN          string
		AutoMigrate  bool
		MaxOpenConns int
		MaxIdleConns int
	}

	Log struct {
		Level  string
		Format string
		App    string
	}
}

// Load loads configuration from environment variables or uses default values.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Port = getEnv("PORT", "8080")
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", cfg.Port, err)
	}

	cfg.Database.DSN = strings.TrimSpace(os.Getenv("DB_DSN"))

	autoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
	}
	cfg.Database.AutoMigrate = autoMigrate

	if cfg.Database.MaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.Database.MaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "text")
	cfg.Log.App = getEnv("APP_NAME", "clinical-records")

	return cfg, nil
}

// Addr es la dirección de escucha para http.Server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, nil
}
