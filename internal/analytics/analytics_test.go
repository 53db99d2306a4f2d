package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendview/internal/core"
)

func txn(day int, hour int, typ core.TxnType, cents int64, bank, merchant string) core.Transaction {
	return core.Transaction{
		Time:      time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC),
		Amount:    core.Money{Cents: cents},
		HasAmount: true,
		Type:      typ,
		Bank:      bank,
		Merchant:  merchant,
	}
}

func fixture() []core.Transaction {
	return []core.Transaction{
		txn(1, 9, core.Debit, 1250, "HDFC", "CORNER CAFE"),   // Mon Jan 1
		txn(1, 18, core.Debit, 5420, "HDFC", "GREEN GROCERS"), // Mon Jan 1
		txn(2, 10, core.Credit, 120000, "SBI", ""),            // Tue Jan 2
		txn(3, 20, core.Debit, 1800, "SBI", "PIZZA PALACE"),   // Wed Jan 3
		txn(8, 11, core.Debit, 23000, "HDFC", "CORNER CAFE"),  // Mon Jan 8
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(fixture())

	assert.Equal(t, int64(1250+5420+1800+23000), s.TotalDebit.Cents)
	assert.Equal(t, int64(120000), s.TotalCredit.Cents)
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, time.Date(2024, 1, 8, 11, 0, 0, 0, time.UTC), s.LatestTxn)
}

func TestSummarizeCountsRowsWithoutAmount(t *testing.T) {
	txns := append(fixture(), core.Transaction{Type: core.Unknown})
	s := Summarize(txns)
	assert.Equal(t, 6, s.Count)
}

func TestDailyDebits(t *testing.T) {
	points := DailyDebits(fixture())

	require.Len(t, points, 3)
	assert.Equal(t, "2024-01-01", points[0].Label)
	assert.Equal(t, int64(1250+5420), points[0].Amount.Cents)
	assert.Equal(t, "2024-01-03", points[1].Label)
	assert.Equal(t, "2024-01-08", points[2].Label)
}

func TestMonthlyByType(t *testing.T) {
	txns := append(fixture(),
		core.Transaction{
			Time: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			// Negative debit exports still aggregate as magnitude.
			Amount: core.Money{Cents: -500}, HasAmount: true, Type: core.Debit,
		})

	points := MonthlyByType(txns)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-01", points[0].Label)
	assert.Equal(t, int64(120000), points[0].Credit.Cents)
	assert.Equal(t, "2024-02", points[1].Label)
	assert.Equal(t, int64(500), points[1].Debit.Cents)
}

func TestTopMerchants(t *testing.T) {
	points := TopMerchants(fixture(), 2)

	require.Len(t, points, 2)
	assert.Equal(t, "CORNER CAFE", points[0].Label)
	assert.Equal(t, int64(1250+23000), points[0].Amount.Cents)
	assert.Equal(t, "GREEN GROCERS", points[1].Label)
}

func TestWeekdayAverages(t *testing.T) {
	points := WeekdayAverages(fixture())

	require.Len(t, points, 7)
	assert.Equal(t, "Monday", points[0].Label)
	// Three Monday debits: 1250, 5420, 23000.
	assert.Equal(t, (int64(1250)+5420+23000)/3, points[0].Amount.Cents)
	assert.Equal(t, "Sunday", points[6].Label)
	assert.Zero(t, points[6].Amount.Cents)
}

func TestBankTotals(t *testing.T) {
	points := BankTotals(fixture())

	require.Len(t, points, 2)
	assert.Equal(t, "HDFC", points[0].Label)
	assert.Equal(t, int64(1250+5420+23000), points[0].Debit.Cents)
	assert.Equal(t, "SBI", points[1].Label)
	assert.Equal(t, int64(120000), points[1].Credit.Cents)
}

func TestDebitHistogram(t *testing.T) {
	buckets := DebitHistogram(fixture(), 4)

	require.Len(t, buckets, 4)
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, 4, total, "every debit lands in exactly one bucket")
	assert.Equal(t, int64(1250), buckets[0].Low.Cents)
}

func TestDebitHistogramDegenerate(t *testing.T) {
	assert.Nil(t, DebitHistogram(nil, 10))

	same := []core.Transaction{
		txn(1, 1, core.Debit, 100, "", ""),
		txn(2, 1, core.Debit, 100, "", ""),
	}
	buckets := DebitHistogram(same, 10)
	require.Len(t, buckets, 1)
	assert.Equal(t, 2, buckets[0].Count)
}
