// Package export writes cleaned transactions as downloadable files: CSV for
// the dashboard's download button and XLSX for spreadsheet round-trips.
package export

import (
	"strconv"
	"time"

	"spendview/internal/core"
)

// Columns is the header row of every export, in output order.
var Columns = []string{"DateTime", "Bank", "Type", "Amount", "Merchant", "Message", "Suspicious"}

// row flattens one transaction into export cells.
func row(t core.Transaction) []string {
	ts := ""
	if !t.Time.IsZero() {
		ts = t.Time.Format(time.DateTime)
	}
	amount := ""
	if t.HasAmount {
		amount = strconv.FormatFloat(t.Amount.Float(), 'f', 2, 64)
	}
	suspicious := "no"
	if t.Suspicious {
		suspicious = "yes"
	}
	return []string{ts, t.Bank, string(t.Type), amount, t.Merchant, t.Message, suspicious}
}
