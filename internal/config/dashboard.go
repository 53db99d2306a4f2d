package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Dashboard holds the display settings loaded from the optional YAML file.
// Everything here has a sensible default, so running without the file works.
type Dashboard struct {
	// Title shown in the page header.
	Title string `yaml:"title"`

	// Sheet is the default sheet reference offered to the UI.
	Sheet struct {
		SpreadsheetID string `yaml:"spreadsheet_id"`
		Worksheet     string `yaml:"worksheet"`
	} `yaml:"sheet"`

	// FreshnessWindow overrides the env default when positive.
	FreshnessWindow time.Duration `yaml:"freshness_window"`

	// Columns pins the worksheet column used for each transaction field.
	// Unset fields fall back to candidate-name detection.
	Columns struct {
		Date       string `yaml:"date"`
		Amount     string `yaml:"amount"`
		Type       string `yaml:"type"`
		Bank       string `yaml:"bank"`
		Message    string `yaml:"message"`
		Suspicious string `yaml:"suspicious"`
	} `yaml:"columns"`

	// TopMerchants is how many merchants the merchant chart shows.
	TopMerchants int `yaml:"top_merchants"`

	// HistogramBins is the bucket count for the amount distribution.
	HistogramBins int `yaml:"histogram_bins"`
}

// DefaultDashboard returns a Dashboard pre-populated with default values.
func DefaultDashboard() *Dashboard {
	d := &Dashboard{
		Title:         "Live Expense Tracker",
		TopMerchants:  10,
		HistogramBins: 30,
	}
	d.Sheet.Worksheet = DefaultWorksheet
	return d
}

// LoadDashboard reads and parses the YAML dashboard file at path.
// Missing optional fields keep their defaults.
func LoadDashboard(path string) (*Dashboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dashboard config: read file: %w", err)
	}

	d := DefaultDashboard()
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("dashboard config: parse yaml: %w", err)
	}

	if err := validateDashboard(d); err != nil {
		return nil, fmt.Errorf("dashboard config: %w", err)
	}
	return d, nil
}

func validateDashboard(d *Dashboard) error {
	if d.FreshnessWindow < 0 {
		return fmt.Errorf("freshness_window must not be negative")
	}
	if d.TopMerchants < 1 {
		return fmt.Errorf("top_merchants must be positive")
	}
	if d.HistogramBins < 1 {
		return fmt.Errorf("histogram_bins must be positive")
	}
	return nil
}
