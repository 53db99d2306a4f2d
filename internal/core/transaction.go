package core

import (
	"regexp"
	"strings"
	"time"
)

// TxnType classifies a transaction as money out or money in.
type TxnType string

const (
	Debit   TxnType = "debit"
	Credit  TxnType = "credit"
	Unknown TxnType = "unknown"
)

// Transaction is one cleaned spreadsheet row. Cleaning is best-effort: rows
// with unparseable cells are kept with zero values rather than dropped, so the
// transaction count always matches the sheet.
type Transaction struct {
	Time       time.Time
	Amount     Money
	HasAmount  bool
	Type       TxnType
	Bank       string
	Message    string
	Merchant   string
	Suspicious bool
}

// ColumnHints lets a dashboard config pin the column used for each field.
// Empty fields fall back to the candidate lookup below.
type ColumnHints struct {
	Date       string
	Amount     string
	Type       string
	Bank       string
	Message    string
	Suspicious string
}

// Column name candidates, matched case-insensitively against the header.
var (
	dateCandidates   = []string{"datetime", "date"}
	amountCandidates = []string{"amount", "amt"}
)

// merchantRe extracts a merchant name from bank SMS style messages
// ("... To ACME STORES ...").
var merchantRe = regexp.MustCompile(`To\s+([A-Za-z0-9 &\.-]{3,50})`)

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"01/02/2006",
	"2/1/2006 15:04",
	"2/1/2006",
}

// CleanRows converts a raw row set into transactions, mirroring the cleaning
// the dashboard applies before charting: locate the useful columns, coerce
// amounts to cents, parse timestamps, and normalize the debit/credit type.
func CleanRows(rs RowSet, hints ColumnHints) []Transaction {
	dateCol := resolveColumn(rs, hints.Date, dateCandidates)
	amountCol := resolveColumn(rs, hints.Amount, amountCandidates)
	typeCol := resolveColumn(rs, hints.Type, []string{"type"})
	bankCol := resolveColumn(rs, hints.Bank, []string{"bank"})
	messageCol := resolveColumn(rs, hints.Message, []string{"message"})
	suspiciousCol := resolveColumn(rs, hints.Suspicious, []string{"suspicious"})

	if dateCol == "" {
		dateCol = detectDateColumn(rs)
	}

	out := make([]Transaction, 0, len(rs.Records))
	for _, rec := range rs.Records {
		t := Transaction{
			Bank:    strings.TrimSpace(rec.Get(bankCol)),
			Message: strings.TrimSpace(rec.Get(messageCol)),
		}

		if cents, err := ParseAmountToCents(rec.Get(amountCol)); err == nil {
			t.Amount = Money{Cents: cents}
			t.HasAmount = true
		}

		if ts, ok := parseTime(rec.Get(dateCol)); ok {
			t.Time = ts
		}

		t.Type = normalizeType(rec.Get(typeCol), t)

		if m := merchantRe.FindStringSubmatch(t.Message); m != nil {
			t.Merchant = strings.TrimSpace(m[1])
		}

		t.Suspicious = parseBool(rec.Get(suspiciousCol))

		out = append(out, t)
	}
	return out
}

// resolveColumn picks the header column for a field: the hint wins when it
// matches a header, otherwise the first matching candidate.
func resolveColumn(rs RowSet, hint string, candidates []string) string {
	if hint != "" {
		if h := rs.Column(hint); h != "" {
			return h
		}
	}
	for _, c := range candidates {
		if h := rs.Column(c); h != "" {
			return h
		}
	}
	return ""
}

// detectDateColumn scans the header for any column whose values parse as
// timestamps, used when no date column was named or matched.
func detectDateColumn(rs RowSet) string {
	for _, h := range rs.Header {
		hits := 0
		for i, rec := range rs.Records {
			if i >= 20 {
				break
			}
			if _, ok := parseTime(rec.Get(h)); ok {
				hits++
			}
		}
		if hits > 0 {
			return h
		}
	}
	return ""
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// normalizeType maps the raw type cell to debit/credit. An explicit value
// wins; "deb"/"cred" substrings cover bank-specific spellings ("DEBITED");
// without a usable value the amount sign decides.
func normalizeType(raw string, t Transaction) TxnType {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "debit":
		return Debit
	case "credit":
		return Credit
	}
	if strings.Contains(v, "deb") {
		return Debit
	}
	if strings.Contains(v, "cred") {
		return Credit
	}
	if t.HasAmount {
		if t.Amount.Cents < 0 {
			return Debit
		}
		if t.Amount.Cents > 0 && v == "" {
			return Credit
		}
	}
	return Unknown
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}
