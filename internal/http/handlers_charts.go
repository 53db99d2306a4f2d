package http

import (
	"net/http"
	"strings"

	"spendview/internal/analytics"
)

// chartJSON is the generic single-series payload the page's chart code reads.
type chartJSON struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// typedChartJSON carries separate debit and credit series per label.
type typedChartJSON struct {
	Labels  []string  `json:"labels"`
	Debits  []float64 `json:"debits"`
	Credits []float64 `json:"credits"`
}

func toChartJSON(points []analytics.Point) chartJSON {
	c := chartJSON{Labels: []string{}, Values: []float64{}}
	for _, p := range points {
		c.Labels = append(c.Labels, p.Label)
		c.Values = append(c.Values, p.Amount.Float())
	}
	return c
}

func toTypedChartJSON(points []analytics.TypedPoint) typedChartJSON {
	c := typedChartJSON{Labels: []string{}, Debits: []float64{}, Credits: []float64{}}
	for _, p := range points {
		c.Labels = append(c.Labels, p.Label)
		c.Debits = append(c.Debits, p.Debit.Float())
		c.Credits = append(c.Credits, p.Credit.Float())
	}
	return c
}

// handleChart dispatches /api/charts/{name} to the matching aggregation.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	txns, _, _, err := s.loadTransactions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	d := s.dashboard()
	name := strings.TrimPrefix(r.URL.Path, "/api/charts/")
	switch name {
	case "daily":
		writeJSON(w, http.StatusOK, toChartJSON(analytics.DailyDebits(txns)))
	case "monthly":
		writeJSON(w, http.StatusOK, toTypedChartJSON(analytics.MonthlyByType(txns)))
	case "merchants":
		writeJSON(w, http.StatusOK, toChartJSON(analytics.TopMerchants(txns, d.TopMerchants)))
	case "weekdays":
		writeJSON(w, http.StatusOK, toChartJSON(analytics.WeekdayAverages(txns)))
	case "banks":
		writeJSON(w, http.StatusOK, toTypedChartJSON(analytics.BankTotals(txns)))
	case "histogram":
		buckets := analytics.DebitHistogram(txns, d.HistogramBins)
		c := chartJSON{Labels: []string{}, Values: []float64{}}
		for _, b := range buckets {
			c.Labels = append(c.Labels, bucketLabel(b))
			c.Values = append(c.Values, float64(b.Count))
		}
		writeJSON(w, http.StatusOK, c)
	default:
		http.NotFound(w, r)
	}
}

func bucketLabel(b analytics.Bucket) string {
	return formatAmount(b.Low) + "-" + formatAmount(b.High)
}
