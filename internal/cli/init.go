// Package cli provides common initialization shared by cmd/spendview and
// cmd/spendview-export: logging, env loading, config validation, and the
// backend-selected worksheet reader.
package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"spendview/internal/config"
	"spendview/internal/log"
	ports "spendview/internal/sheets"
	gsheet "spendview/internal/sheets/google"
	mem "spendview/internal/sheets/memory"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// NewReader builds the worksheet reader the config selects: the Google
// Sheets client or the CSV-seeded memory store. Exits on a backend that
// cannot be initialized.
func NewReader(ctx context.Context, logger *log.Logger, cfg *config.Config) ports.WorksheetReader {
	switch cfg.DataBackend {
	case "sheets":
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err, "backend", cfg.DataBackend)
			os.Exit(1)
		}
		logger.Info("Initialized Google Sheets backend", "backend", cfg.DataBackend)
		return cli
	default:
		store := mem.NewFromFiles(cfg.DataDir)
		logger.Info("Initialized memory backend", "backend", cfg.DataBackend, "data_dir", cfg.DataDir)
		return store
	}
}

// LoadDashboardFile loads the optional dashboard YAML. A missing path yields
// the defaults; a broken file is fatal, better to fail at startup than serve
// a half-configured page.
func LoadDashboardFile(logger *log.Logger, path string) *config.Dashboard {
	if path == "" {
		return config.DefaultDashboard()
	}
	d, err := config.LoadDashboard(path)
	if err != nil {
		logger.Error("Failed to load dashboard config", "error", err, "path", path)
		os.Exit(1)
	}
	logger.Info("Loaded dashboard config", "path", path, "title", d.Title)
	return d
}
