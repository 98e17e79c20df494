package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunnath/pdf-financial-analyzer/internal/domain/document"
)

func row(columns []string, values ...string) document.Row {
	cells := make(map[string]string, len(columns))
	for i, col := range columns {
		if i < len(values) {
			cells[col] = values[i]
		}
	}
	return document.Row{Columns: columns, Cells: cells}
}

func TestClassify(t *testing.T) {
	c := New()

	tests := []struct {
		name          string
		row           document.Row
		wantOK        bool
		wantAmount    float64
		wantDirection Direction
		wantDate      string
		wantDesc      string
	}{
		{
			name:          "explicit CR type column",
			row:           row([]string{"Date", "Description", "Amount", "Type"}, "2024-01-05", "Salary", "50,000.00", "CR"),
			wantOK:        true,
			wantAmount:    50000,
			wantDirection: Credit,
			wantDate:      "2024-01-05",
			wantDesc:      "Salary",
		},
		{
			name:          "explicit DR type column",
			row:           row([]string{"Date", "Description", "Amount", "DR"}, "2024-01-06", "Rent", "15,000.00", "DR"),
			wantOK:        true,
			wantAmount:    15000,
			wantDirection: Debit,
		},
		{
			name:          "keyword inference debit via UPI",
			row:           row([]string{"Date", "Description", "Amount"}, "2024-01-07", "UPI transfer to shop", "450.50"),
			wantOK:        true,
			wantAmount:    450.50,
			wantDirection: Debit,
		},
		{
			name:          "keyword inference credit via NEFT",
			row:           row([]string{"Date", "Description", "Balance"}, "2024-01-08", "NEFT inward", "9,999.99"),
			wantOK:        true,
			wantAmount:    9999.99,
			wantDirection: Credit,
		},
		{
			name:          "both keyword sets present stays unknown",
			row:           row([]string{"Date", "Description", "Amount"}, "2024-01-09", "DEBIT reversal of DEPOSIT", "100.00"),
			wantOK:        true,
			wantAmount:    100,
			wantDirection: Unknown,
		},
		{
			name:   "no amount column",
			row:    row([]string{"Date", "Description"}, "2024-01-10", "note"),
			wantOK: false,
		},
		{
			name:   "empty amount cell",
			row:    row([]string{"Date", "Description", "Amount"}, "2024-01-11", "pending", ""),
			wantOK: false,
		},
		{
			name:   "unparsable amount cell",
			row:    row([]string{"Date", "Description", "Amount"}, "2024-01-12", "pending", "n/a"),
			wantOK: false,
		},
		{
			name:          "numeric header counts as amount column",
			row:           row([]string{"Date", "Description", "1,234.00"}, "2024-01-13", "odd header table", "777.00"),
			wantOK:        true,
			wantAmount:    777,
			wantDirection: Unknown,
		},
		{
			name:          "explicit type beats keyword evidence",
			row:           row([]string{"Date", "Description", "Amount", "Type"}, "2024-01-14", "ATM withdrawal", "2,000.00", "CR"),
			wantOK:        true,
			wantAmount:    2000,
			wantDirection: Credit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := c.Classify(tt.row, "INR")
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantAmount, rec.Amount)
			assert.Equal(t, tt.wantDirection, rec.Direction)
			assert.Equal(t, "INR", rec.SourceCurrency)
			if tt.wantDate != "" {
				assert.Equal(t, tt.wantDate, rec.Date)
			}
			if tt.wantDesc != "" {
				assert.Equal(t, tt.wantDesc, rec.Description)
			}
		})
	}
}

func TestClassifyTable(t *testing.T) {
	c := New()
	columns := []string{"Date", "Description", "Amount", "Type"}
	tbl := document.Table{
		Index: 1,
		Rows: []document.Row{
			row(columns, "2024-02-01", "Salary", "50,000.00", "CR"),
			row(columns, "2024-02-02", "Groceries", "1,200.00", "DR"),
			row(columns, "2024-02-03", "pending", "", ""),
		},
	}

	records := c.ClassifyTable(tbl, "INR")
	require.Len(t, records, 2)
	assert.Equal(t, Credit, records[0].Direction)
	assert.Equal(t, Debit, records[1].Direction)
}

func TestFindColumn(t *testing.T) {
	t.Run("first match in declared order wins", func(t *testing.T) {
		col, ok := findColumn([]string{"Opening Balance", "Amount"}, amountColumnRules)
		require.True(t, ok)
		assert.Equal(t, "Opening Balance", col)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := findColumn([]string{"Date", "Description"}, amountColumnRules)
		assert.False(t, ok)
	})
}

func TestDirectionFromCell(t *testing.T) {
	assert.Equal(t, Credit, directionFromCell("cr"))
	assert.Equal(t, Credit, directionFromCell("CREDIT"))
	assert.Equal(t, Debit, directionFromCell(" dr "))
	assert.Equal(t, Debit, directionFromCell("auto-debit"))
	assert.Equal(t, Unknown, directionFromCell("transfer"))
	assert.Equal(t, Unknown, directionFromCell(""))
}
