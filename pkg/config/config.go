package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Detection DetectionConfig
	Batch     BatchConfig
	Profiles  ProfilesConfig
	Logging   LoggingConfig
}

type DetectionConfig struct {
	// MinScore is the minimum weighted signature score an issuer profile
	// needs before a document is attributed to it.
	MinScore int
}

type BatchConfig struct {
	Workers int
}

type ProfilesConfig struct {
	// Path points at an optional TOML file with extra issuer profiles,
	// loaded on top of the built-in set.
	Path string
}

type LoggingConfig struct {
	Level  slog.Level
	Format string
}

// Load reads configuration from environment variables, with an optional .env
// file applied first.
func Load() (*Config, error) {
	// Missing .env is fine; explicit env vars always win.
	_ = godotenv.Load()

	cfg := &Config{
		Detection: DetectionConfig{
			MinScore: getEnvAsInt("DETECTION_MIN_SCORE", 0),
		},
		Batch: BatchConfig{
			Workers: getEnvAsInt("BATCH_WORKERS", 4),
		},
		Profiles: ProfilesConfig{
			Path: getEnv("PROFILES_PATH", ""),
		},
		Logging: LoggingConfig{
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.Logging.Level = level

	if cfg.Detection.MinScore < 0 {
		return nil, fmt.Errorf("DETECTION_MIN_SCORE must not be negative, got %d", cfg.Detection.MinScore)
	}
	if cfg.Batch.Workers < 1 {
		return nil, fmt.Errorf("BATCH_WORKERS must be at least 1, got %d", cfg.Batch.Workers)
	}

	return cfg, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
	}
	return level, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
