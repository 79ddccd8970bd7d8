package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// TableName is the fixed record-store table holding employees.
const TableName = "Employees"

// Record-store drivers.
const (
	DriverDynamoDB = "dynamodb"
	DriverSQLite   = "sqlite"
)

const recordModeOn = "on"

// Config holds application configuration loaded from environment variables.
// It is populated once at startup and treated as read-only afterwards.
type Config struct {
	// PhotosBucket enables the object store when non-empty.
	PhotosBucket string `envconfig:"PHOTOS_BUCKET"`
	Region       string `envconfig:"AWS_DEFAULT_REGION"`
	// DynamoMode enables the record store when set to "on".
	DynamoMode string `envconfig:"DYNAMO_MODE"`

	RecordDriver     string `envconfig:"DIRECTORY_RECORD_DRIVER" default:"dynamodb"`
	DBPath           string `envconfig:"DIRECTORY_DB_PATH" default:"directory.db"`
	ListenAddr       string `envconfig:"DIRECTORY_LISTEN_ADDR" default:":8080"`
	LogLevelName     string `envconfig:"DIRECTORY_LOG_LEVEL" default:"info"`
	AWSEndpoint      string `envconfig:"DIRECTORY_AWS_ENDPOINT"`
	S3PathStyle      bool   `envconfig:"DIRECTORY_S3_PATH_STYLE" default:"false"`
	MetadataEndpoint string `envconfig:"DIRECTORY_METADATA_ENDPOINT"`
	StressMaxSeconds int    `envconfig:"DIRECTORY_STRESS_MAX_SECONDS" default:"0"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: process env: %w", err)
	}

	cfg.RecordDriver = strings.ToLower(cfg.RecordDriver)
	switch cfg.RecordDriver {
	case DriverDynamoDB, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("config: unknown record driver %q", cfg.RecordDriver)
	}
	if cfg.StressMaxSeconds < 0 {
		return Config{}, fmt.Errorf("config: stress max seconds must not be negative, got %d", cfg.StressMaxSeconds)
	}

	return cfg, nil
}

// RecordsEnabled reports whether the record store is switched on.
func (c Config) RecordsEnabled() bool {
	return c.DynamoMode == recordModeOn
}

// PhotosEnabled reports whether an object-store bucket is configured.
func (c Config) PhotosEnabled() bool {
	return c.PhotosBucket != ""
}

// LogLevel returns the parsed log level.
func (c Config) LogLevel() slog.Level {
	return parseLogLevel(c.LogLevelName)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a structured JSON logger writing to w at the configured level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
