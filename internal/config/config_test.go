package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:            "8081",
		SpreadsheetID:   "abc123",
		WorksheetName:   "History Transactions",
		FreshnessWindow: 5 * time.Minute,
		DataBackend:     "memory",
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		name string
		port string
	}{
		{"not a number", "http"},
		{"zero", "0"},
		{"too large", "70000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Port = tt.port
			if err := cfg.Validate(); err == nil {
				t.Errorf("port %q accepted", tt.port)
			}
		})
	}
}

func TestValidateBackend(t *testing.T) {
	cfg := validConfig()
	cfg.DataBackend = "postgres"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "invalid data backend") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateWindow(t *testing.T) {
	cfg := validConfig()
	cfg.FreshnessWindow = 100 * time.Millisecond
	if err := cfg.Validate(); err == nil {
		t.Error("sub-second window accepted")
	}

	cfg.FreshnessWindow = 48 * time.Hour
	if err := cfg.Validate(); err == nil {
		t.Error("multi-day window accepted")
	}
}

func TestValidateSheetsBackendRequiresSpreadsheet(t *testing.T) {
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", `{"type":"service_account"}`)

	cfg := validConfig()
	cfg.DataBackend = "sheets"
	cfg.SpreadsheetID = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "SPREADSHEET_ID") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateSheetsBackendRequiresCredential(t *testing.T) {
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	cfg := validConfig()
	cfg.DataBackend = "sheets"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "service account credentials") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadMemoryBackendDefaultsSpreadsheet(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("SPREADSHEET_ID", "")

	cfg := Load()
	if cfg.SpreadsheetID != "local" {
		t.Errorf("SpreadsheetID = %q, want placeholder for memory backend", cfg.SpreadsheetID)
	}

	t.Setenv("DATA_BACKEND", "sheets")
	if got := Load().SpreadsheetID; got != "" {
		t.Errorf("sheets backend must not get a placeholder, got %q", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("FRESHNESS_WINDOW", "300")
	if got := getEnvDuration("FRESHNESS_WINDOW", time.Minute); got != 300*time.Second {
		t.Errorf("bare seconds parsed as %v, want 5m", got)
	}

	t.Setenv("FRESHNESS_WINDOW", "2m30s")
	if got := getEnvDuration("FRESHNESS_WINDOW", time.Minute); got != 150*time.Second {
		t.Errorf("duration string parsed as %v, want 2m30s", got)
	}

	t.Setenv("FRESHNESS_WINDOW", "soon")
	if got := getEnvDuration("FRESHNESS_WINDOW", time.Minute); got != time.Minute {
		t.Errorf("garbage fell back to %v, want default", got)
	}
}
