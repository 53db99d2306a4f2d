package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"spendview/internal/core"
	"spendview/internal/log"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// generateRequestID returns a random hex ID for request correlation.
func generateRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// fetchConfigFrom resolves the sheet reference and freshness window for a
// request. Query parameters win, then the dashboard file, then the env
// defaults.
func (s *Server) fetchConfigFrom(r *http.Request) (core.FetchConfig, error) {
	d := s.dashboard()

	fc := s.envDefaults
	if d.Sheet.SpreadsheetID != "" {
		fc.Ref.SpreadsheetID = d.Sheet.SpreadsheetID
	}
	if d.Sheet.Worksheet != "" {
		fc.Ref.Worksheet = d.Sheet.Worksheet
	}
	if d.FreshnessWindow > 0 {
		fc.Window = d.FreshnessWindow
	}

	q := r.URL.Query()
	if v := q.Get("sheet"); v != "" {
		fc.Ref.SpreadsheetID = v
	}
	if v := q.Get("worksheet"); v != "" {
		fc.Ref.Worksheet = v
	}
	if v := q.Get("window"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return core.FetchConfig{}, fmt.Errorf("%w: %q is not a positive number of seconds", core.ErrInvalidWindow, v)
		}
		fc.Window = time.Duration(secs) * time.Second
	}

	if err := fc.Validate(); err != nil {
		return core.FetchConfig{}, err
	}
	return fc, nil
}

// columnHints maps the dashboard column settings to the cleaning hints.
func (s *Server) columnHints() core.ColumnHints {
	c := s.dashboard().Columns
	return core.ColumnHints{
		Date:       c.Date,
		Amount:     c.Amount,
		Type:       c.Type,
		Bank:       c.Bank,
		Message:    c.Message,
		Suspicious: c.Suspicious,
	}
}

// loadTransactions fetches (or serves cached) rows and cleans them.
func (s *Server) loadTransactions(r *http.Request) ([]core.Transaction, core.FetchConfig, bool, error) {
	fc, err := s.fetchConfigFrom(r)
	if err != nil {
		return nil, core.FetchConfig{}, false, err
	}

	rows, hit, err := s.cache.Get(r.Context(), fc.Ref, fc.Window)
	if err != nil {
		return nil, fc, hit, err
	}

	return core.CleanRows(rows, s.columnHints()), fc, hit, nil
}

// formatAmount renders a money value with two decimals for chart labels.
func formatAmount(m core.Money) string {
	return strconv.FormatFloat(m.Float(), 'f', 2, 64)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func windowFor(override, fallback time.Duration) time.Duration {
	if override > 0 {
		return override
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// writeError maps a fetch error to an HTTP status and a JSON body the page
// can show. Error detail is logged, not leaked.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorStatus(err)

	log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
		log.FieldPath, r.URL.Path, log.FieldStatusCode, status, log.FieldError, err)

	writeJSON(w, status, map[string]string{"error": msg})
}

// errorStatus classifies fetch failures for the client. Upstream problems
// surface as 502 so the page can say "the sheet backend failed" rather than
// blaming the request.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrAuthentication):
		return http.StatusBadGateway, "authentication with the sheet backend failed"
	case errors.Is(err, core.ErrPermissionDenied):
		return http.StatusForbidden, "the service account is not allowed to read this sheet"
	case errors.Is(err, core.ErrSheetNotFound):
		return http.StatusNotFound, "spreadsheet or worksheet not found"
	case errors.Is(err, core.ErrTransient):
		return http.StatusBadGateway, "the sheet backend is temporarily unavailable, try again"
	case errors.Is(err, core.ErrMalformedResponse):
		return http.StatusBadGateway, "the sheet backend returned an unreadable response"
	case errors.Is(err, core.ErrEmptySpreadsheetID),
		errors.Is(err, core.ErrEmptyWorksheet),
		errors.Is(err, core.ErrInvalidWindow):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
