package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"spendview/internal/core"
)

func TestReadWorksheet(t *testing.T) {
	s := New()
	s.SetWorksheet("Expenses", core.RowSet{
		Header:  []string{"Date", "Amount"},
		Records: []core.Record{{"Date": "2024-01-01", "Amount": "12.5"}},
	})

	ref := core.SheetRef{SpreadsheetID: "abc123", Worksheet: "Expenses"}
	rs, err := s.ReadWorksheet(context.Background(), ref)
	if err != nil {
		t.Fatalf("ReadWorksheet: %v", err)
	}
	if len(rs.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(rs.Records))
	}

	// The returned row set is a copy; mutating it must not leak back.
	rs.Records[0]["Amount"] = "999"
	again, _ := s.ReadWorksheet(context.Background(), ref)
	if again.Records[0]["Amount"] != "12.5" {
		t.Error("ReadWorksheet leaked a mutable reference")
	}
}

func TestReadWorksheetNotFound(t *testing.T) {
	s := New()
	_, err := s.ReadWorksheet(context.Background(), core.SheetRef{SpreadsheetID: "abc123", Worksheet: "Nope"})
	if !errors.Is(err, core.ErrSheetNotFound) {
		t.Errorf("error = %v, want ErrSheetNotFound", err)
	}
}

func TestNewFromFiles(t *testing.T) {
	dir := t.TempDir()
	csv := "Date,Amount,Type\n2024-02-01,-5.00,debit\n2024-02-02,10.00,credit\n"
	if err := os.WriteFile(filepath.Join(dir, "Spending.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewFromFiles(dir)
	rs, err := s.ReadWorksheet(context.Background(), core.SheetRef{SpreadsheetID: "x", Worksheet: "Spending"})
	if err != nil {
		t.Fatalf("ReadWorksheet: %v", err)
	}
	if len(rs.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(rs.Records))
	}
	if rs.Records[0]["Type"] != "debit" {
		t.Errorf("Type = %q, want debit", rs.Records[0]["Type"])
	}
}

func TestNewFromFilesFallsBackToSample(t *testing.T) {
	s := NewFromFiles(filepath.Join(t.TempDir(), "missing"))
	rs, err := s.ReadWorksheet(context.Background(), core.SheetRef{SpreadsheetID: "x", Worksheet: "History Transactions"})
	if err != nil {
		t.Fatalf("ReadWorksheet: %v", err)
	}
	if rs.IsEmpty() {
		t.Error("sample worksheet should not be empty")
	}
}
