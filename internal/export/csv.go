// Package export writes observation and transaction collections out as flat
// tables. The core hands this package plain structured data; no formatting
// decisions are made here beyond the column layout.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/kunnath/pdf-financial-analyzer/internal/domain/classify"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/extract"
)

// ObservationRow is the flat CSV shape of one observation.
type ObservationRow struct {
	Source   string  `csv:"source"`
	Page     int     `csv:"page"`
	Table    int     `csv:"table"`
	Column   string  `csv:"column"`
	Row      int     `csv:"row"`
	Amount   float64 `csv:"amount"`
	Currency string  `csv:"currency"`
	RawText  string  `csv:"raw_text"`
}

// TransactionRow is the flat CSV shape of one classified transaction.
type TransactionRow struct {
	Date        string  `csv:"date"`
	Description string  `csv:"description"`
	Amount      float64 `csv:"amount"`
	Currency    string  `csv:"currency"`
	Direction   string  `csv:"direction"`
}

func observationRows(observations []extract.Observation) []ObservationRow {
	rows := make([]ObservationRow, len(observations))
	for i, obs := range observations {
		rows[i] = ObservationRow{
			Source:   string(obs.Origin.Source),
			Page:     obs.Origin.Page,
			Table:    obs.Origin.Table,
			Column:   obs.Origin.Column,
			Row:      obs.Origin.Row,
			Amount:   obs.Value,
			Currency: obs.SourceCurrency,
			RawText:  obs.RawText,
		}
	}
	return rows
}

func transactionRows(transactions []classify.Record) []TransactionRow {
	rows := make([]TransactionRow, len(transactions))
	for i, tx := range transactions {
		rows[i] = TransactionRow{
			Date:        tx.Date,
			Description: tx.Description,
			Amount:      tx.Amount,
			Currency:    tx.SourceCurrency,
			Direction:   string(tx.Direction),
		}
	}
	return rows
}

// WriteObservationsCSV writes observations as CSV with a header row.
func WriteObservationsCSV(w io.Writer, observations []extract.Observation) error {
	rows := observationRows(observations)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write observations csv: %w", err)
	}
	return nil
}

// WriteTransactionsCSV writes classified transactions as CSV.
func WriteTransactionsCSV(w io.Writer, transactions []classify.Record) error {
	rows := transactionRows(transactions)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write transactions csv: %w", err)
	}
	return nil
}
