package google

import (
	"fmt"
	"strings"

	"spendview/internal/core"
)

// parseGrid converts a values matrix (as returned by the Sheets API) into a
// RowSet. The first row is the header; short rows are padded with empty
// strings; fully empty rows are skipped.
func parseGrid(values [][]interface{}) (core.RowSet, error) {
	if len(values) == 0 {
		return core.RowSet{}, fmt.Errorf("%w: worksheet is empty", core.ErrMalformedResponse)
	}

	header := toStrings(values[0])
	if !hasHeader(header) {
		return core.RowSet{}, fmt.Errorf("%w: first row has no column names", core.ErrMalformedResponse)
	}

	rs := core.RowSet{Header: header}
	for _, row := range values[1:] {
		cols := toStrings(row)
		if allEmpty(cols) {
			continue
		}
		rec := make(core.Record, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(cols) {
				rec[h] = cols[i]
			} else {
				rec[h] = ""
			}
		}
		rs.Records = append(rs.Records, rec)
	}
	return rs, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func hasHeader(cols []string) bool {
	for _, c := range cols {
		if c != "" {
			return true
		}
	}
	return false
}

func allEmpty(cols []string) bool {
	for _, c := range cols {
		if c != "" {
			return false
		}
	}
	return true
}
