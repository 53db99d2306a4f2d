// Package analytics computes the summary metrics and chart series the
// dashboard renders from cleaned transactions. All functions are pure:
// they take a transaction slice and return aggregated values, leaving
// serialization to the HTTP layer.
package analytics

import (
	"sort"
	"time"

	"spendview/internal/core"
)

type (
	// Summary holds the headline metrics row of the dashboard.
	Summary struct {
		TotalDebit  core.Money
		TotalCredit core.Money
		Count       int
		LatestTxn   time.Time
	}

	// Point is one labeled value in a single-series chart.
	Point struct {
		Label  string
		Amount core.Money
	}

	// TypedPoint is one label with separate debit and credit values.
	TypedPoint struct {
		Label  string
		Debit  core.Money
		Credit core.Money
	}

	// Bucket is one bar of the amount-distribution histogram.
	Bucket struct {
		Low   core.Money
		High  core.Money
		Count int
	}
)

// Summarize computes totals over all transactions. Debit and credit totals
// are magnitudes; rows without a parseable amount still count.
func Summarize(txns []core.Transaction) Summary {
	s := Summary{Count: len(txns)}
	for _, t := range txns {
		if t.HasAmount {
			switch t.Type {
			case core.Debit:
				s.TotalDebit.Cents += t.Amount.Abs().Cents
			case core.Credit:
				s.TotalCredit.Cents += t.Amount.Abs().Cents
			}
		}
		if t.Time.After(s.LatestTxn) {
			s.LatestTxn = t.Time
		}
	}
	return s
}

// DailyDebits returns per-day debit totals in date order (the daily spending
// trend line). Transactions without a timestamp are skipped.
func DailyDebits(txns []core.Transaction) []Point {
	totals := map[string]int64{}
	for _, t := range txns {
		if t.Type != core.Debit || !t.HasAmount || t.Time.IsZero() {
			continue
		}
		totals[t.Time.Format("2006-01-02")] += t.Amount.Abs().Cents
	}

	days := make([]string, 0, len(totals))
	for d := range totals {
		days = append(days, d)
	}
	sort.Strings(days)

	out := make([]Point, 0, len(days))
	for _, d := range days {
		out = append(out, Point{Label: d, Amount: core.Money{Cents: totals[d]}})
	}
	return out
}

// MonthlyByType returns per-month debit and credit totals in month order
// (the stacked monthly bar chart).
func MonthlyByType(txns []core.Transaction) []TypedPoint {
	type pair struct{ debit, credit int64 }
	totals := map[string]*pair{}
	for _, t := range txns {
		if !t.HasAmount || t.Time.IsZero() {
			continue
		}
		m := t.Time.Format("2006-01")
		p, ok := totals[m]
		if !ok {
			p = &pair{}
			totals[m] = p
		}
		switch t.Type {
		case core.Debit:
			p.debit += t.Amount.Abs().Cents
		case core.Credit:
			p.credit += t.Amount.Abs().Cents
		}
	}

	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]TypedPoint, 0, len(months))
	for _, m := range months {
		out = append(out, TypedPoint{
			Label:  m,
			Debit:  core.Money{Cents: totals[m].debit},
			Credit: core.Money{Cents: totals[m].credit},
		})
	}
	return out
}

// TopMerchants returns the n merchants with the highest debit spend,
// descending. Transactions without an extracted merchant are ignored.
func TopMerchants(txns []core.Transaction, n int) []Point {
	totals := map[string]int64{}
	order := make([]string, 0)
	for _, t := range txns {
		if t.Merchant == "" || t.Type != core.Debit || !t.HasAmount {
			continue
		}
		if _, seen := totals[t.Merchant]; !seen {
			order = append(order, t.Merchant)
		}
		totals[t.Merchant] += t.Amount.Abs().Cents
	}

	// Stable sort on first-seen order keeps ties deterministic.
	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] > totals[order[j]]
	})
	if n > 0 && len(order) > n {
		order = order[:n]
	}

	out := make([]Point, 0, len(order))
	for _, m := range order {
		out = append(out, Point{Label: m, Amount: core.Money{Cents: totals[m]}})
	}
	return out
}

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeekdayAverages returns the mean debit amount per weekday, Monday through
// Sunday. Weekdays without debits get a zero point so the chart always has
// seven bars.
func WeekdayAverages(txns []core.Transaction) []Point {
	sums := map[time.Weekday]int64{}
	counts := map[time.Weekday]int{}
	for _, t := range txns {
		if t.Type != core.Debit || !t.HasAmount || t.Time.IsZero() {
			continue
		}
		wd := t.Time.Weekday()
		sums[wd] += t.Amount.Abs().Cents
		counts[wd]++
	}

	out := make([]Point, 0, len(weekdayOrder))
	for _, wd := range weekdayOrder {
		var avg int64
		if counts[wd] > 0 {
			avg = sums[wd] / int64(counts[wd])
		}
		out = append(out, Point{Label: wd.String(), Amount: core.Money{Cents: avg}})
	}
	return out
}

// BankTotals returns per-bank debit and credit totals in first-seen order.
// Transactions without a bank column value are ignored.
func BankTotals(txns []core.Transaction) []TypedPoint {
	type pair struct{ debit, credit int64 }
	totals := map[string]*pair{}
	order := make([]string, 0)
	for _, t := range txns {
		if t.Bank == "" || !t.HasAmount {
			continue
		}
		p, ok := totals[t.Bank]
		if !ok {
			p = &pair{}
			totals[t.Bank] = p
			order = append(order, t.Bank)
		}
		switch t.Type {
		case core.Debit:
			p.debit += t.Amount.Abs().Cents
		case core.Credit:
			p.credit += t.Amount.Abs().Cents
		}
	}

	out := make([]TypedPoint, 0, len(order))
	for _, b := range order {
		out = append(out, TypedPoint{
			Label:  b,
			Debit:  core.Money{Cents: totals[b].debit},
			Credit: core.Money{Cents: totals[b].credit},
		})
	}
	return out
}

// DebitHistogram buckets debit magnitudes into bins equal-width buckets
// between the smallest and largest amount.
func DebitHistogram(txns []core.Transaction, bins int) []Bucket {
	if bins <= 0 {
		bins = 30
	}

	var amounts []int64
	for _, t := range txns {
		if t.Type != core.Debit || !t.HasAmount {
			continue
		}
		amounts = append(amounts, t.Amount.Abs().Cents)
	}
	if len(amounts) == 0 {
		return nil
	}

	lo, hi := amounts[0], amounts[0]
	for _, a := range amounts[1:] {
		if a < lo {
			lo = a
		}
		if a > hi {
			hi = a
		}
	}

	if lo == hi {
		return []Bucket{{Low: core.Money{Cents: lo}, High: core.Money{Cents: hi}, Count: len(amounts)}}
	}

	width := (hi - lo + int64(bins) - 1) / int64(bins)
	out := make([]Bucket, bins)
	for i := range out {
		low := lo + int64(i)*width
		out[i] = Bucket{Low: core.Money{Cents: low}, High: core.Money{Cents: low + width}}
	}
	for _, a := range amounts {
		idx := int((a - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}
