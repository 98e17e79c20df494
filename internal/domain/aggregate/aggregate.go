// Package aggregate combines extracted observations and classified
// transactions into a summary report in a single display currency.
package aggregate

import (
	"fmt"
	"log/slog"

	"github.com/kunnath/pdf-financial-analyzer/internal/domain/classify"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/currency"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/extract"
)

// Summary holds the statistics for one slice of amounts. Mean of an empty
// slice is 0 by convention, never NaN.
type Summary struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
	Mean  float64 `json:"mean"`
	Max   float64 `json:"max"`
	Min   float64 `json:"min"`
}

// Report is the derived view over the current observation and transaction
// collections. It is recomputed on demand and never persisted. Observations
// and transactions are separate collections: only their totals sit side by
// side here, they are never merged positionally.
type Report struct {
	DisplayCurrency string  `json:"display_currency"`
	TotalCount      int     `json:"total_count"`
	Sum             float64 `json:"sum"`
	Mean            float64 `json:"mean"`
	Max             float64 `json:"max"`
	Min             float64 `json:"min"`
	Credit          Summary `json:"credit"`
	Debit           Summary `json:"debit"`
	Unknown         Summary `json:"unknown"`
	NetBalance      float64 `json:"net_balance"`
}

// Aggregator converts amounts into a display currency and computes reports.
type Aggregator struct {
	table  *currency.Table
	logger *slog.Logger
}

// New creates an Aggregator bound to a currency table.
func New(table *currency.Table, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{table: table, logger: logger}
}

// Aggregate computes the report for the given collections in the display
// currency. An unknown display currency is a caller configuration mistake
// and is returned as an error; observations or transactions carrying an
// unknown source currency are skipped with a warning, since a partially
// usable batch beats none.
func (a *Aggregator) Aggregate(observations []extract.Observation, transactions []classify.Record, display string) (Report, error) {
	if _, err := a.table.Rate(display); err != nil {
		return Report{}, fmt.Errorf("aggregate: %w", err)
	}

	values := make([]float64, 0, len(observations))
	for _, obs := range observations {
		v, err := a.table.Convert(obs.Value, obs.SourceCurrency, display)
		if err != nil {
			a.logger.Warn("skipping observation with unknown currency",
				slog.String("currency", obs.SourceCurrency),
				slog.String("origin", obs.Origin.String()))
			continue
		}
		values = append(values, v)
	}

	report := Report{DisplayCurrency: display}
	overall := summarize(values)
	report.TotalCount = overall.Count
	report.Sum = overall.Total
	report.Mean = overall.Mean
	report.Max = overall.Max
	report.Min = overall.Min

	report.Credit = a.summarizeDirection(transactions, classify.Credit, display)
	report.Debit = a.summarizeDirection(transactions, classify.Debit, display)
	report.Unknown = a.summarizeDirection(transactions, classify.Unknown, display)
	report.NetBalance = report.Credit.Total - report.Debit.Total

	return report, nil
}

// summarizeDirection filters transactions by direction and summarizes their
// converted amounts.
func (a *Aggregator) summarizeDirection(transactions []classify.Record, dir classify.Direction, display string) Summary {
	var values []float64
	for _, tx := range transactions {
		if tx.Direction != dir {
			continue
		}
		v, err := a.table.Convert(tx.Amount, tx.SourceCurrency, display)
		if err != nil {
			a.logger.Warn("skipping transaction with unknown currency",
				slog.String("currency", tx.SourceCurrency),
				slog.String("direction", string(dir)))
			continue
		}
		values = append(values, v)
	}
	return summarize(values)
}

func summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	s := Summary{
		Count: len(values),
		Max:   values[0],
		Min:   values[0],
	}
	for _, v := range values {
		s.Total += v
		if v > s.Max {
			s.Max = v
		}
		if v < s.Min {
			s.Min = v
		}
	}
	s.Mean = s.Total / float64(s.Count)
	return s
}
