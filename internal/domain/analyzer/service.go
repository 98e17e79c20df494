// Package analyzer orchestrates the full pipeline for one document: amount
// extraction over pages and tables, row classification, aggregation, and
// query answering. Each call is a pure function of its inputs; nothing is
// retained between documents, so the service is safe to share.
package analyzer

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kunnath/pdf-financial-analyzer/internal/domain/aggregate"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/classify"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/currency"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/document"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/extract"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/query"
)

// NoAmountsMessage is the user-visible text when an entire document yields
// nothing. An empty document is a normal outcome, not an error.
const NoAmountsMessage = "no amounts found"

// Analysis is the result of processing one document. The observation and
// transaction collections stay separate all the way through; presentation
// layers receive them as plain data.
type Analysis struct {
	ID                uuid.UUID             `json:"id"`
	SourceCurrency    string                `json:"source_currency"`
	DisplayCurrency   string                `json:"display_currency"`
	PageCount         int                   `json:"page_count"`
	TableCount        int                   `json:"table_count"`
	TextObservations  []extract.Observation `json:"text_observations"`
	TableObservations []extract.Observation `json:"table_observations"`
	Transactions      []classify.Record     `json:"transactions"`
	Report            aggregate.Report      `json:"report"`
}

// Observations returns the combined text and table observations, text first.
func (a *Analysis) Observations() []extract.Observation {
	out := make([]extract.Observation, 0, len(a.TextObservations)+len(a.TableObservations))
	out = append(out, a.TextObservations...)
	out = append(out, a.TableObservations...)
	return out
}

// Empty reports whether the document yielded no observations at all.
func (a *Analysis) Empty() bool {
	return len(a.TextObservations) == 0 && len(a.TableObservations) == 0
}

// Options tunes pipeline behavior.
type Options struct {
	// DedupeTableAmounts collapses repeated (origin, value) pairs during
	// table scanning. Text extraction never dedupes; the asymmetry is
	// intentional and configurable rather than silently "fixed".
	DedupeTableAmounts bool
}

// DefaultOptions matches the behavior of the table scanner's two-pass scan.
func DefaultOptions() Options {
	return Options{DedupeTableAmounts: true}
}

// Service wires the pipeline stages together around one currency table.
type Service struct {
	table      *currency.Table
	extractor  *extract.Extractor
	classifier *classify.Classifier
	aggregator *aggregate.Aggregator
	responder  *query.Responder
	opts       Options
	logger     *slog.Logger
}

// NewService creates the analyzer service. The extractor's currency-code
// patterns are derived from the table's registered codes.
func NewService(table *currency.Table, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		table:      table,
		extractor:  extract.New(table.Codes()...),
		classifier: classify.New(),
		aggregator: aggregate.New(table, logger),
		responder:  query.New(table),
		opts:       opts,
		logger:     logger,
	}
}

// Analyze runs the full pipeline over one document. Source and display
// currencies must both be registered; anything else is a configuration
// mistake surfaced to the caller.
func (s *Service) Analyze(doc document.Document, sourceCurrency, displayCurrency string) (*Analysis, error) {
	if _, err := s.table.Rate(sourceCurrency); err != nil {
		return nil, fmt.Errorf("source currency: %w", err)
	}
	if _, err := s.table.Rate(displayCurrency); err != nil {
		return nil, fmt.Errorf("display currency: %w", err)
	}

	analysis := &Analysis{
		ID:              uuid.New(),
		SourceCurrency:  sourceCurrency,
		DisplayCurrency: displayCurrency,
		PageCount:       len(doc.Pages),
		TableCount:      len(doc.Tables),
	}

	for _, page := range doc.Pages {
		analysis.TextObservations = append(analysis.TextObservations,
			s.extractor.ExtractPage(page, sourceCurrency)...)
	}

	for _, tbl := range doc.Tables {
		analysis.TableObservations = append(analysis.TableObservations,
			s.extractor.ExtractTable(tbl, sourceCurrency, s.opts.DedupeTableAmounts)...)
		analysis.Transactions = append(analysis.Transactions,
			s.classifier.ClassifyTable(tbl, sourceCurrency)...)
	}

	report, err := s.aggregator.Aggregate(analysis.Observations(), analysis.Transactions, displayCurrency)
	if err != nil {
		return nil, err
	}
	analysis.Report = report

	s.logger.Info("document analyzed",
		slog.String("analysis_id", analysis.ID.String()),
		slog.Int("pages", analysis.PageCount),
		slog.Int("tables", analysis.TableCount),
		slog.Int("text_amounts", len(analysis.TextObservations)),
		slog.Int("table_amounts", len(analysis.TableObservations)),
		slog.Int("transactions", len(analysis.Transactions)))

	return analysis, nil
}

// Answer resolves a free-text question against a completed analysis.
func (s *Service) Answer(queryText string, analysis *Analysis) (string, error) {
	return s.responder.Answer(queryText, analysis.Observations(), analysis.Report)
}
