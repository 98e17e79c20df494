package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kunnath/pdf-financial-analyzer/internal/domain/aggregate"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/analyzer"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/classify"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/currency"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/extract"
)

func TestWriteObservationsCSV(t *testing.T) {
	observations := []extract.Observation{
		{
			Value:          1234.56,
			SourceCurrency: "USD",
			RawText:        "$1,234.56",
			Origin:         extract.Origin{Source: extract.SourceText, Page: 2},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteObservationsCSV(&buf, observations))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "source,page,table,column,row,amount,currency,raw_text", lines[0])
	assert.Contains(t, lines[1], "1234.56")
	assert.Contains(t, lines[1], "USD")
}

func TestWriteTransactionsCSV(t *testing.T) {
	transactions := []classify.Record{
		{
			Amount:         500,
			SourceCurrency: "INR",
			Direction:      classify.Credit,
			Date:           "2024-01-01",
			Description:    "Salary",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsCSV(&buf, transactions))

	out := buf.String()
	assert.Contains(t, out, "date,description,amount,currency,direction")
	assert.Contains(t, out, "credit")
	assert.Contains(t, out, "Salary")
}

func TestWriteWorkbook(t *testing.T) {
	table, err := currency.NewTable("INR", []currency.Definition{
		{Code: "INR", Rate: 1.0, Symbol: "₹", DecimalPlaces: 2},
	})
	require.NoError(t, err)

	analysis := &analyzer.Analysis{
		DisplayCurrency: "INR",
		PageCount:       1,
		TableCount:      1,
		TextObservations: []extract.Observation{
			{Value: 100, SourceCurrency: "INR", RawText: "₹100.00",
				Origin: extract.Origin{Source: extract.SourceText, Page: 1}},
		},
		TableObservations: []extract.Observation{
			{Value: 250, SourceCurrency: "INR", RawText: "250.00",
				Origin: extract.Origin{Source: extract.SourceTable, Table: 1, Column: "Amount", Row: 1}},
		},
		Transactions: []classify.Record{
			{Amount: 250, SourceCurrency: "INR", Direction: classify.Debit, Date: "2024-01-01", Description: "Rent"},
		},
		Report: aggregate.Report{DisplayCurrency: "INR", TotalCount: 2, Sum: 350},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, analysis, table))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Text_Amounts", "Table_Amounts", "Transactions", "Summary"},
		f.GetSheetList())

	cell, err := f.GetCellValue("Text_Amounts", "B2")
	require.NoError(t, err)
	assert.Equal(t, "100", cell)

	total, err := f.GetCellValue("Summary", "B6")
	require.NoError(t, err)
	assert.Equal(t, "₹350.00", total)
}
