package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"spendview/internal/analytics"
	"spendview/internal/core"
	"spendview/internal/log"
)

// txnJSON is the wire form of one cleaned transaction.
type txnJSON struct {
	DateTime   string  `json:"datetime,omitempty"`
	Amount     float64 `json:"amount"`
	HasAmount  bool    `json:"has_amount"`
	Type       string  `json:"type"`
	Bank       string  `json:"bank,omitempty"`
	Message    string  `json:"message,omitempty"`
	Merchant   string  `json:"merchant,omitempty"`
	Suspicious bool    `json:"suspicious"`
}

func toTxnJSON(t core.Transaction) txnJSON {
	j := txnJSON{
		Amount:     t.Amount.Float(),
		HasAmount:  t.HasAmount,
		Type:       string(t.Type),
		Bank:       t.Bank,
		Message:    t.Message,
		Merchant:   t.Merchant,
		Suspicious: t.Suspicious,
	}
	if !t.Time.IsZero() {
		j.DateTime = t.Time.Format(time.DateTime)
	}
	return j
}

// handleRows returns the cleaned transactions plus a short raw preview, the
// two tables the page shows under the charts.
func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fc, err := s.fetchConfigFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rows, hit, err := s.cache.Get(r.Context(), fc.Ref, fc.Window)
	if err != nil {
		writeError(w, r, err)
		return
	}

	limit := 200
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	txns := core.CleanRows(rows, s.columnHints())
	cleaned := make([]txnJSON, 0, min(limit, len(txns)))
	for i, t := range txns {
		if i >= limit {
			break
		}
		cleaned = append(cleaned, toTxnJSON(t))
	}

	const rawPreview = 10
	raw := rows.Records
	if len(raw) > rawPreview {
		raw = raw[:rawPreview]
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"header":       rows.Header,
		"raw_preview":  raw,
		"transactions": cleaned,
		"count":        len(txns),
		"cache_hit":    hit,
	})
}

// handleSummary returns the headline metrics row.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	txns, fc, hit, err := s.loadTransactions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sum := analytics.Summarize(txns)

	resp := map[string]interface{}{
		"total_debit":  sum.TotalDebit.Float(),
		"total_credit": sum.TotalCredit.Float(),
		"count":        sum.Count,
		"cache_hit":    hit,
	}
	if !sum.LatestTxn.IsZero() {
		resp["latest_txn"] = sum.LatestTxn.Format(time.DateTime)
	}
	if age, ok := s.cache.Age(fc.Ref); ok {
		resp["age_seconds"] = int(age.Seconds())
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleRefresh drops the cache entry and fetches fresh rows immediately, the
// sidebar Refresh button. POST only; the limiter in the middleware caps how
// often a client can do this.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fc, err := s.fetchConfigFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.cache.Invalidate(fc.Ref)

	rows, _, err := s.cache.Get(r.Context(), fc.Ref, fc.Window)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Manual refresh",
		log.FieldSpreadsheet, fc.Ref.SpreadsheetID, log.FieldWorksheet, fc.Ref.Worksheet,
		log.FieldRowCount, len(rows.Records))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"refreshed": true,
		"count":     len(rows.Records),
	})
}
