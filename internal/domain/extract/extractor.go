// Package extract turns raw page text and table cell strings into monetary
// observations. Extraction is deliberately recall-over-precision: every
// surface pattern runs independently and a fragment recognized by more than
// one pattern is reported once per pattern. Callers that want uniqueness
// deduplicate afterwards (table scanning does, text scanning does not).
package extract

import (
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"strings"

	"github.com/kunnath/pdf-financial-analyzer/internal/domain/document"
)

// Source tells which collaborator an observation came from.
type Source string

const (
	SourceText  Source = "text"
	SourceTable Source = "table"
)

// Origin is the provenance of an observation: a page for text extraction, or
// a table cell for grid extraction.
type Origin struct {
	Source Source `json:"source"`
	Page   int    `json:"page,omitempty"`
	Table  int    `json:"table,omitempty"`
	Column string `json:"column,omitempty"`
	Row    int    `json:"row,omitempty"`
}

// Observation is one extracted monetary amount. It is immutable once
// produced; converting to another currency yields a new value elsewhere,
// never a mutation here.
type Observation struct {
	Value          float64 `json:"amount"`
	SourceCurrency string  `json:"source_currency"`
	RawText        string  `json:"raw_text"`
	Origin         Origin  `json:"origin"`
}

const amountBody = `\d{1,3}(?:,\d{3})*(?:\.\d{2})?`

// pattern is one lexical shape of a monetary amount. bareToken patterns only
// count when the match stands alone between whitespace, so that the digits
// inside "$200" or "2024-01-01" are not re-reported as plain numbers.
type pattern struct {
	name      string
	re        *regexp.Regexp
	bareToken bool
}

// Extractor applies an ordered list of surface patterns to text. Pattern
// order fixes the output order only; the patterns are independent.
type Extractor struct {
	patterns []pattern
}

// DefaultCodes are the currency codes recognized in code-adjacent patterns
// when the caller does not supply its own set.
var DefaultCodes = []string{"INR", "USD", "EUR", "GBP", "JPY"}

// New builds an extractor whose code-prefixed and code-suffixed patterns
// recognize the given currency codes. With no codes, DefaultCodes is used.
func New(codes ...string) *Extractor {
	if len(codes) == 0 {
		codes = DefaultCodes
	}
	alternation := `(?i:` + strings.Join(codes, "|") + `)`

	return &Extractor{
		patterns: []pattern{
			{name: "symbol-prefixed", re: regexp.MustCompile(`[₹$€£¥]\s*` + amountBody)},
			{name: "symbol-suffixed", re: regexp.MustCompile(amountBody + `\s*[₹$€£¥]`)},
			{name: "bare-number", re: regexp.MustCompile(amountBody), bareToken: true},
			{name: "code-prefixed", re: regexp.MustCompile(alternation + `\s*` + amountBody)},
			{name: "code-suffixed", re: regexp.MustCompile(amountBody + `\s*` + alternation)},
		},
	}
}

// Extract lazily yields every candidate amount found in text, tagged with the
// given source currency. Origins are left zero; callers stamp them. Empty or
// whitespace-only text yields nothing. Unparsable and non-positive matches
// are silently discarded: extraction over noisy documents is best-effort.
func (e *Extractor) Extract(text, sourceCurrency string) iter.Seq[Observation] {
	return func(yield func(Observation) bool) {
		if strings.TrimSpace(text) == "" {
			return
		}
		for _, p := range e.patterns {
			for _, loc := range p.re.FindAllStringIndex(text, -1) {
				if p.bareToken && !standsAlone(text, loc[0], loc[1]) {
					continue
				}
				raw := text[loc[0]:loc[1]]
				value, ok := parseAmount(raw)
				if !ok {
					continue
				}
				obs := Observation{
					Value:          value,
					SourceCurrency: sourceCurrency,
					RawText:        raw,
				}
				if !yield(obs) {
					return
				}
			}
		}
	}
}

// ExtractAll collects Extract into a slice.
func (e *Extractor) ExtractAll(text, sourceCurrency string) []Observation {
	var out []Observation
	for obs := range e.Extract(text, sourceCurrency) {
		out = append(out, obs)
	}
	return out
}

// ExtractPage extracts from one page's text and stamps page provenance.
func (e *Extractor) ExtractPage(page document.Page, sourceCurrency string) []Observation {
	var out []Observation
	for obs := range e.Extract(page.Text, sourceCurrency) {
		obs.Origin = Origin{Source: SourceText, Page: page.Number}
		out = append(out, obs)
	}
	return out
}

// amountColumnKeywords marks table columns that are scanned first, before
// the catch-all pass over every cell.
var amountColumnKeywords = []string{"amount", "balance", "total", "sum", "value", "price", "cost"}

func isAmountColumn(header string) bool {
	lower := strings.ToLower(header)
	for _, kw := range amountColumnKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ExtractTable scans a table grid: amount-named columns first, then every
// remaining cell. With dedupe enabled, repeated (origin, value) pairs
// collapse to a single observation, which also folds the two passes
// together; without it the raw multi-pattern output is kept.
func (e *Extractor) ExtractTable(tbl document.Table, sourceCurrency string, dedupe bool) []Observation {
	type seenKey struct {
		origin Origin
		value  float64
	}
	seen := make(map[seenKey]struct{})
	var out []Observation

	scan := func(match func(string) bool) {
		for _, col := range tbl.Columns() {
			if !match(col) {
				continue
			}
			for rowIdx, row := range tbl.Rows {
				cell := row.Get(col)
				if cell == "" {
					continue
				}
				origin := Origin{
					Source: SourceTable,
					Table:  tbl.Index,
					Column: col,
					Row:    rowIdx + 1,
				}
				for obs := range e.Extract(cell, sourceCurrency) {
					obs.Origin = origin
					if dedupe {
						k := seenKey{origin: origin, value: obs.Value}
						if _, dup := seen[k]; dup {
							continue
						}
						seen[k] = struct{}{}
					}
					out = append(out, obs)
				}
			}
		}
	}

	scan(isAmountColumn)
	scan(func(string) bool { return true })
	return out
}

// standsAlone reports whether text[start:end] is bounded by whitespace or
// the text edges on both sides.
func standsAlone(text string, start, end int) bool {
	if start > 0 && !isSpaceByte(text[start-1]) {
		return false
	}
	if end < len(text) && !isSpaceByte(text[end]) {
		return false
	}
	return true
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

var nonAmountChars = regexp.MustCompile(`[^0-9.,]`)

// parseAmount reduces a raw pattern match to a positive number. A cleaned
// body with a decimal point treats commas as thousands separators; a body of
// pure digits parses as an integer; anything else is unparsable.
func parseAmount(raw string) (float64, bool) {
	cleaned := nonAmountChars.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, false
	}

	var value float64
	var err error
	switch {
	case strings.Contains(cleaned, "."):
		value, err = strconv.ParseFloat(strings.ReplaceAll(cleaned, ",", ""), 64)
	case isDigits(cleaned):
		value, err = strconv.ParseFloat(cleaned, 64)
	default:
		return 0, false
	}
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// String implements fmt.Stringer for debugging and log output.
func (o Origin) String() string {
	if o.Source == SourceTable {
		return fmt.Sprintf("table %d, column %q, row %d", o.Table, o.Column, o.Row)
	}
	return fmt.Sprintf("page %d", o.Page)
}
