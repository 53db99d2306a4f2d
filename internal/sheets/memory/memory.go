// Package memory is an in-process WorksheetReader used for local development
// and tests. Worksheets are seeded from CSV files in a data directory, so the
// dashboard can run without a Google credential.
package memory

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"spendview/internal/core"
	ports "spendview/internal/sheets"
)

type Store struct {
	mu         sync.Mutex
	worksheets map[string]core.RowSet
}

var _ ports.WorksheetReader = (*Store)(nil)

func New() *Store {
	return &Store{worksheets: make(map[string]core.RowSet)}
}

// NewFromFiles loads every *.csv file under base as a worksheet named after
// the file (without extension). A missing or empty directory yields a store
// seeded with a small sample worksheet so the dashboard renders something.
func NewFromFiles(base string) *Store {
	s := New()

	entries, err := os.ReadDir(base)
	if err == nil {
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
				continue
			}
			name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
			if rs, err := readCSV(filepath.Join(base, e.Name())); err == nil {
				s.SetWorksheet(name, rs)
			}
		}
	}

	if len(s.worksheets) == 0 {
		s.SetWorksheet("History Transactions", sampleRows())
	}
	return s
}

// SetWorksheet replaces the named worksheet.
func (s *Store) SetWorksheet(name string, rs core.RowSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.worksheets[name] = rs
}

// ReadWorksheet returns a copy of the named worksheet. The spreadsheet ID is
// not checked; a dev store stands in for whatever spreadsheet is configured.
func (s *Store) ReadWorksheet(_ context.Context, ref core.SheetRef) (core.RowSet, error) {
	if err := ref.Validate(); err != nil {
		return core.RowSet{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rs, ok := s.worksheets[ref.Worksheet]
	if !ok {
		return core.RowSet{}, fmt.Errorf("%w: worksheet %q", core.ErrSheetNotFound, ref.Worksheet)
	}
	return cloneRowSet(rs), nil
}

func readCSV(path string) (core.RowSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.RowSet{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return core.RowSet{}, err
	}
	if len(rows) == 0 {
		return core.RowSet{}, fmt.Errorf("empty csv: %s", path)
	}

	rs := core.RowSet{Header: rows[0]}
	for _, row := range rows[1:] {
		rec := make(core.Record, len(rs.Header))
		for i, h := range rs.Header {
			if i < len(row) {
				rec[h] = strings.TrimSpace(row[i])
			} else {
				rec[h] = ""
			}
		}
		rs.Records = append(rs.Records, rec)
	}
	return rs, nil
}

func cloneRowSet(rs core.RowSet) core.RowSet {
	out := core.RowSet{Header: append([]string(nil), rs.Header...)}
	out.Records = make([]core.Record, len(rs.Records))
	for i, rec := range rs.Records {
		c := make(core.Record, len(rec))
		for k, v := range rec {
			c[k] = v
		}
		out.Records[i] = c
	}
	return out
}

func sampleRows() core.RowSet {
	header := []string{"DateTime", "Bank", "Type", "Amount", "Message", "Suspicious"}
	rows := [][]string{
		{"2024-01-01 09:12:00", "HDFC", "debit", "12.50", "Paid To CORNER CAFE via UPI", "no"},
		{"2024-01-01 18:40:00", "HDFC", "debit", "54.20", "Paid To GREEN GROCERS via UPI", "no"},
		{"2024-01-02 10:00:00", "SBI", "credit", "1200.00", "Salary credit Jan", "no"},
		{"2024-01-03 20:15:00", "SBI", "debit", "18.00", "Paid To PIZZA PALACE via card", "no"},
		{"2024-01-06 11:05:00", "HDFC", "debit", "230.00", "Paid To ACME ELECTRONICS", "yes"},
	}

	rs := core.RowSet{Header: header}
	for _, row := range rows {
		rec := make(core.Record, len(header))
		for i, h := range header {
			rec[h] = row[i]
		}
		rs.Records = append(rs.Records, rec)
	}
	return rs
}
