// spendview-export fetches a worksheet once and writes the cleaned
// transactions to a CSV or XLSX file, the same export the dashboard serves.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spendview/internal/cli"
	"spendview/internal/config"
	"spendview/internal/core"
	"spendview/internal/export"
)

var (
	flagSheet     string
	flagWorksheet string
	flagFormat    string
	flagOut       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "spendview-export",
		Short: "Export cleaned transactions from a worksheet",
		Long: `Fetches a worksheet through the configured backend (Google Sheets or the
CSV-seeded memory store), cleans the rows, and writes them as CSV or XLSX.
Backend and credentials come from the same environment variables the server
uses.`,
		RunE:          runExport,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVar(&flagSheet, "sheet", "", "spreadsheet ID (default: SPREADSHEET_ID)")
	rootCmd.Flags().StringVar(&flagWorksheet, "worksheet", "", "worksheet name (default: WORKSHEET_NAME)")
	rootCmd.Flags().StringVar(&flagFormat, "format", "csv", "output format: csv or xlsx")
	rootCmd.Flags().StringVarP(&flagOut, "out", "o", "-", "output file, - for stdout")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runExport(cmd *cobra.Command, _ []string) error {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := config.Load()
	if flagSheet != "" {
		cfg.SpreadsheetID = flagSheet
	}
	if flagWorksheet != "" {
		cfg.WorksheetName = flagWorksheet
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ref := core.SheetRef{
		SpreadsheetID: cfg.SpreadsheetID,
		Worksheet:     cfg.WorksheetName,
	}
	if err := ref.Validate(); err != nil {
		return err
	}

	reader := cli.NewReader(cmd.Context(), logger, cfg)
	rows, err := reader.ReadWorksheet(cmd.Context(), ref)
	if err != nil {
		return fmt.Errorf("fetch worksheet: %w", err)
	}

	hints := core.ColumnHints{}
	if cfg.DashboardFile != "" {
		d, err := config.LoadDashboard(cfg.DashboardFile)
		if err != nil {
			return err
		}
		hints = core.ColumnHints{
			Date:       d.Columns.Date,
			Amount:     d.Columns.Amount,
			Type:       d.Columns.Type,
			Bank:       d.Columns.Bank,
			Message:    d.Columns.Message,
			Suspicious: d.Columns.Suspicious,
		}
	}
	txns := core.CleanRows(rows, hints)

	out := os.Stdout
	if flagOut != "-" {
		f, err := os.Create(flagOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch flagFormat {
	case "csv":
		err = export.WriteCSV(out, txns)
	case "xlsx":
		err = export.WriteXLSX(out, txns)
	default:
		return fmt.Errorf("unknown format %q: must be csv or xlsx", flagFormat)
	}
	if err != nil {
		return err
	}

	logger.Info("Export written", "worksheet", ref.Worksheet, "rows", len(txns), "format", flagFormat, "out", flagOut)
	return nil
}
