package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunnath/pdf-financial-analyzer/internal/domain/aggregate"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/classify"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/currency"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/extract"
)

func testSetup(t *testing.T) (*Responder, []extract.Observation, aggregate.Report) {
	t.Helper()
	table, err := currency.NewTable("INR", []currency.Definition{
		{Code: "INR", Rate: 1.0, Symbol: "₹", DecimalPlaces: 2},
		{Code: "USD", Rate: 0.012, Symbol: "$", DecimalPlaces: 2},
	})
	require.NoError(t, err)

	observations := []extract.Observation{
		{Value: 100, SourceCurrency: "INR", Origin: extract.Origin{Source: extract.SourceText, Page: 1}},
		{Value: 400, SourceCurrency: "INR", Origin: extract.Origin{Source: extract.SourceText, Page: 1}},
		{Value: 1500, SourceCurrency: "INR", Origin: extract.Origin{Source: extract.SourceText, Page: 2}},
	}
	transactions := []classify.Record{
		{Amount: 800, SourceCurrency: "INR", Direction: classify.Credit},
		{Amount: 300, SourceCurrency: "INR", Direction: classify.Debit},
	}

	report, err := aggregate.New(table, nil).Aggregate(observations, transactions, "INR")
	require.NoError(t, err)

	return New(table), observations, report
}

func TestAnswerNoData(t *testing.T) {
	r, _, report := testSetup(t)
	answer, err := r.Answer("total?", nil, report)
	require.NoError(t, err)
	assert.Equal(t, NoDataAnswer, answer)
}

func TestAnswerIntents(t *testing.T) {
	r, observations, report := testSetup(t)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"total", "what is the total amount?", "Total amount: ₹2,000.00"},
		{"sum synonym", "sum of everything", "Total amount: ₹2,000.00"},
		{"count", "how many amounts are there?", "Total records: 3 amounts found"},
		{"count synonym", "number of records", "Total records: 3 amounts found"},
		{"average", "what is the average?", "Average amount: ₹666.67"},
		{"max", "highest amount please", "Highest amount: ₹1,500.00"},
		{"min", "what is the lowest value", "Lowest amount: ₹100.00"},
		{"range", "amounts between 200 and 2000", "Amounts between ₹200.00 and ₹2,000.00: 2 records, total ₹1,900.00"},
		{"range reversed bounds", "amounts between 2000 and 200", "Amounts between ₹200.00 and ₹2,000.00: 2 records, total ₹1,900.00"},
		{"above", "amounts greater than 350", "Amounts above ₹350.00: 2 records, total ₹1,900.00"},
		{"below", "amounts less than 350", "Amounts below ₹350.00: 1 records, total ₹100.00"},
		{"page", "amounts on page 1", "Page 1: 2 amounts, total ₹500.00"},
		{"page without amounts", "what about page 7", "Page 7: no amounts found"},
		{"credit", "total credit amount", "Credit (CR) transactions: count 1, total ₹800.00, average ₹800.00, highest ₹800.00, lowest ₹800.00"},
		{"debit word boundary", "show dr entries", "Debit (DR) transactions: count 1, total ₹300.00, average ₹300.00, highest ₹300.00, lowest ₹300.00"},
		{"net balance", "net balance please", "Net balance: ₹500.00 (credits ₹800.00 over 1 transactions, debits ₹300.00 over 1 transactions)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, err := r.Answer(tt.query, observations, report)
			require.NoError(t, err)
			assert.Equal(t, tt.want, answer)
		})
	}
}

func TestAnswerFallbacks(t *testing.T) {
	r, observations, report := testSetup(t)

	t.Run("range without numbers falls to summary", func(t *testing.T) {
		answer, err := r.Answer("show me the range of things", observations, report)
		require.NoError(t, err)
		assert.Contains(t, answer, "Summary: 3 records")
	})

	t.Run("comparison without numbers falls to summary", func(t *testing.T) {
		answer, err := r.Answer("anything above the usual", observations, report)
		require.NoError(t, err)
		assert.Contains(t, answer, "Summary: 3 records")
	})

	t.Run("page without number falls to summary", func(t *testing.T) {
		answer, err := r.Answer("which pages matter", observations, report)
		require.NoError(t, err)
		assert.Contains(t, answer, "Summary: 3 records")
	})

	t.Run("unrecognized query gets summary", func(t *testing.T) {
		answer, err := r.Answer("tell me something interesting", observations, report)
		require.NoError(t, err)
		assert.Contains(t, answer, "Summary: 3 records, total ₹2,000.00")
	})

	t.Run("typo gets a suggestion", func(t *testing.T) {
		answer, err := r.Answer("show me the totle", observations, report)
		require.NoError(t, err)
		assert.Contains(t, answer, `did you mean "total"?`)
	})
}

func TestWordBoundaryMatching(t *testing.T) {
	r, observations, report := testSetup(t)

	// "crates" contains "cr" but not as a word, so this is not a
	// credit/debit question.
	answer, err := r.Answer("how many crates in total", observations, report)
	require.NoError(t, err)
	assert.Equal(t, "Total amount: ₹2,000.00", answer)
}
