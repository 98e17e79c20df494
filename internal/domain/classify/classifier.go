// Package classify turns raw table rows into transaction records with a
// credit/debit direction. Column detection is a ranked-predicate search over
// the row's declared schema, and direction inference is a two-stage policy:
// explicit type-column evidence first, keyword scanning as a fallback.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/kunnath/pdf-financial-analyzer/internal/domain/document"
)

// Direction labels a transaction as money in, money out, or undetermined.
type Direction string

const (
	Credit  Direction = "credit"
	Debit   Direction = "debit"
	Unknown Direction = "unknown"
)

// Record is one classified table row. The date/description assignment is
// positional (first declared column = date, second = description), a known
// heuristic limitation for tables with unusual column orders.
type Record struct {
	Amount         float64      `json:"amount"`
	SourceCurrency string       `json:"source_currency"`
	Direction      Direction    `json:"direction"`
	Description    string       `json:"description"`
	Date           string       `json:"date"`
	RawFields      document.Row `json:"raw_fields"`
}

// columnRule is one (label, predicate) pair of the declarative column
// search. Rules are evaluated per column in declared column order; the first
// column satisfying any rule wins.
type columnRule struct {
	label string
	match func(header string) bool
}

var amountColumnRules = []columnRule{
	{"amount-keyword", func(h string) bool {
		lower := strings.ToLower(h)
		return strings.Contains(lower, "amount") ||
			strings.Contains(lower, "balance") ||
			strings.Contains(lower, "value")
	}},
	{"numeric-header", isNumericHeader},
}

var typeColumnRules = []columnRule{
	{"exact-type", func(h string) bool {
		switch strings.ToUpper(strings.TrimSpace(h)) {
		case "DR", "CR", "TYPE":
			return true
		}
		return false
	}},
	{"debit-credit-keyword", func(h string) bool {
		upper := strings.ToUpper(h)
		return strings.Contains(upper, "DEBIT") || strings.Contains(upper, "CREDIT")
	}},
}

// findColumn returns the first column (in declared order) matching any rule.
func findColumn(columns []string, rules []columnRule) (string, bool) {
	for _, col := range columns {
		for _, rule := range rules {
			if rule.match(col) {
				return col, true
			}
		}
	}
	return "", false
}

// isNumericHeader reports whether a header is purely numeric once thousands
// separators and decimal points are stripped (some statement tables carry an
// amount column headed by a stray number).
func isNumericHeader(h string) bool {
	cleaned := strings.NewReplacer(".", "", ",", "").Replace(strings.TrimSpace(h))
	if cleaned == "" {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Keyword sets for direction inference over the whole row text. Matching is
// plain substring presence, same as the evidence the documents themselves
// provide (bank transfer modes like IMPS/NEFT imply incoming funds, UPI/ATM
// imply outgoing).
var (
	creditKeywords = []string{"CR", "CREDIT", "DEPOSIT", "RECEIVED", "IMPS", "NEFT", "RTGS"}
	debitKeywords  = []string{"DR", "DEBIT", "WITHDRAWAL", "PAID", "UPI", "ATM", "POS"}
)

var amountCellPattern = regexp.MustCompile(`\d+(?:,\d{3})*(?:\.\d{2})?`)

// Classifier classifies table rows. The keyword matchers are Aho-Corasick
// automatons built once, so scanning a row is a single pass per set
// regardless of keyword count.
type Classifier struct {
	creditMatcher *ahocorasick.Matcher
	debitMatcher  *ahocorasick.Matcher
}

// New builds a classifier with the standard credit/debit keyword sets.
func New() *Classifier {
	return &Classifier{
		creditMatcher: ahocorasick.NewStringMatcher(creditKeywords),
		debitMatcher:  ahocorasick.NewStringMatcher(debitKeywords),
	}
}

// Classify turns one row into a Record. The boolean is false when the row
// has no usable amount: no amount column, an empty cell, or an unparsable
// value. Those rows are skipped silently; partial failure is the norm for
// noisy documents.
func (c *Classifier) Classify(row document.Row, sourceCurrency string) (Record, bool) {
	amountCol, ok := findColumn(row.Columns, amountColumnRules)
	if !ok {
		return Record{}, false
	}

	cell := row.Get(amountCol)
	if cell == "" {
		return Record{}, false
	}

	amount, ok := parseAmountCell(cell)
	if !ok {
		return Record{}, false
	}

	direction := Unknown
	if typeCol, found := findColumn(row.Columns, typeColumnRules); found {
		direction = directionFromCell(row.Get(typeCol))
	}
	if direction == Unknown {
		direction = c.inferDirection(row)
	}

	rec := Record{
		Amount:         amount,
		SourceCurrency: sourceCurrency,
		Direction:      direction,
		RawFields:      row,
	}
	if len(row.Columns) > 0 {
		rec.Date = row.Get(row.Columns[0])
	}
	if len(row.Columns) > 1 {
		rec.Description = row.Get(row.Columns[1])
	}
	return rec, true
}

// ClassifyTable classifies every row of a table, dropping rows without a
// parsable amount.
func (c *Classifier) ClassifyTable(tbl document.Table, sourceCurrency string) []Record {
	var out []Record
	for _, row := range tbl.Rows {
		if rec, ok := c.Classify(row, sourceCurrency); ok {
			out = append(out, rec)
		}
	}
	return out
}

// directionFromCell interprets an explicit type-column value. Explicit
// evidence always wins over keyword inference, but an inconclusive cell
// falls through to it.
func directionFromCell(cell string) Direction {
	upper := strings.ToUpper(strings.TrimSpace(cell))
	switch {
	case upper == "CR" || strings.Contains(upper, "CREDIT"):
		return Credit
	case upper == "DR" || strings.Contains(upper, "DEBIT"):
		return Debit
	default:
		return Unknown
	}
}

// inferDirection scans the concatenation of all non-empty cell values.
// Evidence from both sets at once is contradictory and stays Unknown.
func (c *Classifier) inferDirection(row document.Row) Direction {
	rowText := strings.ToUpper(strings.Join(row.Values(), " "))
	if rowText == "" {
		return Unknown
	}

	credit := len(c.creditMatcher.Match([]byte(rowText))) > 0
	debit := len(c.debitMatcher.Match([]byte(rowText))) > 0
	switch {
	case credit && !debit:
		return Credit
	case debit && !credit:
		return Debit
	default:
		return Unknown
	}
}

// parseAmountCell extracts a positive decimal from an amount cell, which may
// carry currency markers or other noise around the number.
func parseAmountCell(cell string) (float64, bool) {
	match := amountCellPattern.FindString(cell)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}
