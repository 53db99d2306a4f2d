package core

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptySpreadsheetID = errors.New("empty spreadsheet id")
	ErrEmptyWorksheet     = errors.New("empty worksheet name")
	ErrInvalidWindow      = errors.New("freshness window must be positive")
)

type (
	// SheetRef identifies one worksheet inside one spreadsheet. It is supplied
	// per request and never persisted.
	SheetRef struct {
		SpreadsheetID string
		Worksheet     string
	}

	// Record maps header column names to raw cell values.
	Record map[string]string

	// RowSet is the parsed tabular content of one worksheet fetch. The first
	// grid row is the header. A RowSet is immutable once fetched and is
	// replaced wholesale by the next fetch.
	RowSet struct {
		Header  []string
		Records []Record
	}

	// FetchConfig is the per-request configuration the UI supplies: where to
	// read from and how old a cached row set may be before refetching.
	FetchConfig struct {
		Ref    SheetRef
		Window time.Duration
	}
)

func (r SheetRef) Validate() error {
	if strings.TrimSpace(r.SpreadsheetID) == "" {
		return ErrEmptySpreadsheetID
	}
	if strings.TrimSpace(r.Worksheet) == "" {
		return ErrEmptyWorksheet
	}
	return nil
}

// Key returns the cache key for this reference. The separator cannot appear in
// a spreadsheet ID, so keys are unambiguous.
func (r SheetRef) Key() string {
	return r.SpreadsheetID + "/" + r.Worksheet
}

func (c FetchConfig) Validate() error {
	if err := c.Ref.Validate(); err != nil {
		return err
	}
	if c.Window <= 0 {
		return ErrInvalidWindow
	}
	return nil
}

// Get returns the value of the named column, or "" when the column is absent.
func (rec Record) Get(column string) string {
	return rec[column]
}

// IsEmpty reports whether the row set contains no data rows.
func (rs RowSet) IsEmpty() bool {
	return len(rs.Records) == 0
}

// Column returns the header name matching name case-insensitively, or "".
func (rs RowSet) Column(name string) string {
	for _, h := range rs.Header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return h
		}
	}
	return ""
}
