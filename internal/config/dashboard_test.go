package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeDashboard(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDashboard(t *testing.T) {
	path := writeDashboard(t, `
title: Household spending
sheet:
  spreadsheet_id: abc123
  worksheet: Expenses
freshness_window: 2m
columns:
  date: Posted
  amount: Value
top_merchants: 5
`)

	d, err := LoadDashboard(path)
	if err != nil {
		t.Fatalf("LoadDashboard: %v", err)
	}

	if d.Title != "Household spending" {
		t.Errorf("title = %q", d.Title)
	}
	if d.Sheet.SpreadsheetID != "abc123" || d.Sheet.Worksheet != "Expenses" {
		t.Errorf("sheet = %+v", d.Sheet)
	}
	if d.FreshnessWindow != 2*time.Minute {
		t.Errorf("window = %v, want 2m", d.FreshnessWindow)
	}
	if d.Columns.Date != "Posted" || d.Columns.Amount != "Value" {
		t.Errorf("columns = %+v", d.Columns)
	}
	if d.TopMerchants != 5 {
		t.Errorf("top_merchants = %d, want 5", d.TopMerchants)
	}
	// Unset fields keep defaults.
	if d.HistogramBins != 30 {
		t.Errorf("histogram_bins = %d, want default 30", d.HistogramBins)
	}
}

func TestLoadDashboardDefaults(t *testing.T) {
	d, err := LoadDashboard(writeDashboard(t, "title: Minimal\n"))
	if err != nil {
		t.Fatalf("LoadDashboard: %v", err)
	}
	if d.Sheet.Worksheet != DefaultWorksheet {
		t.Errorf("worksheet = %q, want default", d.Sheet.Worksheet)
	}
	if d.TopMerchants != 10 {
		t.Errorf("top_merchants = %d, want 10", d.TopMerchants)
	}
}

func TestLoadDashboardInvalid(t *testing.T) {
	if _, err := LoadDashboard(writeDashboard(t, "title: [broken")); err == nil {
		t.Error("invalid yaml accepted")
	}
	if _, err := LoadDashboard(writeDashboard(t, "top_merchants: 0\n")); err == nil {
		t.Error("zero top_merchants accepted")
	}
	if _, err := LoadDashboard(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}
