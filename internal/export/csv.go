package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"spendview/internal/core"
)

// WriteCSV writes the cleaned transactions to w as CSV, header first.
func WriteCSV(w io.Writer, txns []core.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range txns {
		if err := cw.Write(row(t)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
