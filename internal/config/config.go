package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bbolt"
)

type Config struct {
	DBPath         string
	StorageDriver  string
	ServerPort     string
	LogLevel       string
	BackupDir      string
	BackupSchedule string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:         getEnv("DB_PATH", "lineup.db"),
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", DriverSQLite)),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		BackupDir:      getEnv("BACKUP_DIR", "backups"),
		BackupSchedule: os.Getenv("BACKUP_SCHEDULE"),
	}
	if _, set := os.LookupEnv("BACKUP_SCHEDULE"); !set {
		cfg.BackupSchedule = "0 3 * * *"
	}

	if cfg.StorageDriver != DriverSQLite && cfg.StorageDriver != DriverBolt {
		return nil, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverBolt, cfg.StorageDriver)
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("storage_driver", cfg.StorageDriver).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("backup_schedule", cfg.BackupSchedule).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
