package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"spendview/internal/core"
)

const xlsxSheet = "Transactions"

// WriteXLSX writes the cleaned transactions to w as an XLSX workbook with a
// single sheet. Amounts are written as numbers so spreadsheet formulas work
// on the export.
func WriteXLSX(w io.Writer, txns []core.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, name := range Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(xlsxSheet, cell, name); err != nil {
			return fmt.Errorf("write header cell: %w", err)
		}
	}

	for i, t := range txns {
		cells := row(t)
		for col := range Columns {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}

			// The Amount column goes out as a number, everything else as text.
			var v interface{} = cells[col]
			if Columns[col] == "Amount" && t.HasAmount {
				v = t.Amount.Float()
			}
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
