package http

import (
	"log/slog"
	"net/http"
)

// handleIndex renders the dashboard page shell. Data arrives through the
// /api endpoints once the page scripts run.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.templates == nil {
		http.Error(w, "Templates unavailable", http.StatusInternalServerError)
		return
	}

	d := s.dashboard()
	data := struct {
		Title         string
		SpreadsheetID string
		Worksheet     string
		WindowSeconds int
	}{
		Title:         d.Title,
		SpreadsheetID: firstNonEmpty(d.Sheet.SpreadsheetID, s.envDefaults.Ref.SpreadsheetID),
		Worksheet:     firstNonEmpty(d.Sheet.Worksheet, s.envDefaults.Ref.Worksheet),
		WindowSeconds: int(windowFor(d.FreshnessWindow, s.envDefaults.Window).Seconds()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render dashboard", "error", err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady mirrors handleHealth; the server has no warm-up phase, the
// first request simply populates the cache.
func handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
