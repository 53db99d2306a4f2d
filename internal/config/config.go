package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Default sheet reference, overridable per request from the UI.
	SpreadsheetID string
	WorksheetName string

	// FreshnessWindow is how long a cached row set is served without a
	// refetch.
	FreshnessWindow time.Duration

	// DashboardFile is an optional YAML file with display settings and
	// column hints; watched for changes when set.
	DashboardFile string

	// DataDir seeds the memory backend with CSV worksheets.
	DataDir string

	// Backend selection: memory | sheets
	DataBackend string
}

const (
	DefaultWorksheet       = "History Transactions"
	DefaultFreshnessWindow = 5 * time.Minute
)

func Load() *Config {
	c := &Config{
		Port: getEnv("PORT", "8081"),

		SpreadsheetID:   getEnv("SPREADSHEET_ID", ""),
		WorksheetName:   getEnv("WORKSHEET_NAME", DefaultWorksheet),
		FreshnessWindow: getEnvDuration("FRESHNESS_WINDOW", DefaultFreshnessWindow),

		DashboardFile: getEnv("DASHBOARD_CONFIG", ""),
		DataDir:       getEnv("DATA_DIR", "./data"),

		DataBackend: getEnv("DATA_BACKEND", "memory"),
	}

	// The memory backend ignores the spreadsheet ID, but sheet references
	// still need one. The sheets backend keeps requiring it explicitly.
	if c.DataBackend != "sheets" && c.SpreadsheetID == "" {
		c.SpreadsheetID = "local"
	}
	return c
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory", "sheets":
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [memory sheets]", c.DataBackend))
	}

	if c.FreshnessWindow < time.Second {
		errors = append(errors, fmt.Sprintf("invalid freshness window %v: must be at least 1 second", c.FreshnessWindow))
	} else if c.FreshnessWindow > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid freshness window %v: must be at most 24 hours", c.FreshnessWindow))
	}

	if c.DataBackend == "sheets" {
		if c.SpreadsheetID == "" {
			errors = append(errors, "SPREADSHEET_ID is required when using the sheets backend")
		}
		if c.WorksheetName == "" {
			errors = append(errors, "WORKSHEET_NAME cannot be empty when using the sheets backend")
		}

		// The credential itself is validated by the Sheets client; here we
		// only check that one of the supported sources is configured.
		hasJSON := os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON") != ""
		hasFile := os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE") != "" || os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != ""
		if !hasJSON && !hasFile {
			errors = append(errors, "service account credentials required for sheets backend (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
		}
	}

	if c.DashboardFile != "" {
		if _, err := os.Stat(c.DashboardFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("dashboard config file does not exist: %s", c.DashboardFile))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// Bare integers are treated as seconds, matching the UI field.
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
