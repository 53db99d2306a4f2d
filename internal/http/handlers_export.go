package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"spendview/internal/export"
	"spendview/internal/log"
)

// handleExportCSV streams the cleaned transactions as a CSV download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	txns, fc, _, err := s.loadTransactions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("transactions-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.WriteCSV(w, txns); err != nil {
		// Headers are gone at this point; log and give up.
		slog.ErrorContext(r.Context(), "CSV export failed",
			log.FieldWorksheet, fc.Ref.Worksheet, log.FieldError, err)
		return
	}

	slog.InfoContext(r.Context(), "CSV export",
		log.FieldWorksheet, fc.Ref.Worksheet, log.FieldRowCount, len(txns))
}

// handleExportXLSX streams the cleaned transactions as an XLSX download.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	txns, fc, _, err := s.loadTransactions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("transactions-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.WriteXLSX(w, txns); err != nil {
		slog.ErrorContext(r.Context(), "XLSX export failed",
			log.FieldWorksheet, fc.Ref.Worksheet, log.FieldError, err)
		return
	}

	slog.InfoContext(r.Context(), "XLSX export",
		log.FieldWorksheet, fc.Ref.Worksheet, log.FieldRowCount, len(txns))
}
