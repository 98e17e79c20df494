// Package currency provides the static exchange-rate table used for all
// conversion and display formatting. Rates are configuration, not live data:
// every rate expresses how many units of that currency one unit of the base
// currency buys, so the base currency's own rate is exactly 1.
package currency

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ErrUnknownCurrency is returned when a conversion or formatting operation
// references a code that was never registered in the table.
var ErrUnknownCurrency = errors.New("unknown currency")

// Definition is one configured currency entry.
// Symbol and DecimalPlaces may be left unset (empty / negative); registration
// then falls back to ISO-4217 metadata for the code.
type Definition struct {
	Code          string
	Rate          float64
	Symbol        string
	DecimalPlaces int
}

type entry struct {
	rate          decimal.Decimal
	symbol        string
	decimalPlaces int
}

// Table maps currency codes to rates, symbols and minor-unit counts. It is
// built once at startup and passed by reference into every component that
// converts or formats amounts; it is immutable after construction.
type Table struct {
	base    string
	entries map[string]entry
}

// NewTable builds a Table from explicit definitions. The base currency must
// be among the definitions with a rate of exactly 1.
func NewTable(base string, defs []Definition) (*Table, error) {
	if len(defs) == 0 {
		return nil, errors.New("currency table needs at least one definition")
	}

	entries := make(map[string]entry, len(defs))
	for _, def := range defs {
		code := strings.ToUpper(strings.TrimSpace(def.Code))
		if code == "" {
			return nil, errors.New("currency definition with empty code")
		}
		if def.Rate <= 0 {
			return nil, fmt.Errorf("currency %s: rate must be positive, got %v", code, def.Rate)
		}

		symbol := def.Symbol
		places := def.DecimalPlaces
		if iso := gomoney.GetCurrency(code); iso != nil {
			if symbol == "" {
				symbol = iso.Grapheme
			}
			if places < 0 {
				places = iso.Fraction
			}
		}
		if symbol == "" {
			symbol = code
		}
		if places != 0 {
			places = 2
		}

		entries[code] = entry{
			rate:          decimal.NewFromFloat(def.Rate),
			symbol:        symbol,
			decimalPlaces: places,
		}
	}

	base = strings.ToUpper(strings.TrimSpace(base))
	baseEntry, ok := entries[base]
	if !ok {
		return nil, fmt.Errorf("base currency %s is not defined", base)
	}
	if !baseEntry.rate.Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("base currency %s must have rate 1, got %s", base, baseEntry.rate)
	}

	return &Table{base: base, entries: entries}, nil
}

// Base returns the base currency code all conversions route through.
func (t *Table) Base() string { return t.base }

// Has reports whether a code is registered.
func (t *Table) Has(code string) bool {
	_, ok := t.entries[code]
	return ok
}

// Codes returns the registered currency codes in sorted order.
func (t *Table) Codes() []string {
	codes := make([]string, 0, len(t.entries))
	for code := range t.entries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Rate returns the exchange rate for a code, or ErrUnknownCurrency.
func (t *Table) Rate(code string) (decimal.Decimal, error) {
	e, ok := t.entries[code]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("rate for %q: %w", code, ErrUnknownCurrency)
	}
	return e.rate, nil
}

// Symbol returns the display symbol for a code. Unregistered codes fall back
// to the code itself; a missing symbol is never an error.
func (t *Table) Symbol(code string) string {
	if e, ok := t.entries[code]; ok {
		return e.symbol
	}
	return code
}

// Convert converts an amount between two registered currencies by
// normalizing through the base currency. A same-currency conversion returns
// the amount untouched, without any floating round-trip.
func (t *Table) Convert(amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}

	fromRate, err := t.Rate(from)
	if err != nil {
		return 0, err
	}
	toRate, err := t.Rate(to)
	if err != nil {
		return 0, err
	}

	converted := decimal.NewFromFloat(amount).Div(fromRate).Mul(toRate)
	return converted.InexactFloat64(), nil
}

// Format renders an amount with the currency's symbol, thousands grouping
// and its configured minor-unit count (zero-decimal currencies render with no
// decimal separator at all).
func (t *Table) Format(amount float64, code string) (string, error) {
	e, ok := t.entries[code]
	if !ok {
		return "", fmt.Errorf("format as %q: %w", code, ErrUnknownCurrency)
	}

	d := decimal.NewFromFloat(amount)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(int32(e.decimalPlaces))
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	grouped := groupThousands(intPart)
	if fracPart != "" {
		grouped += "." + fracPart
	}

	return e.symbol + sign + grouped, nil
}

// groupThousands inserts comma separators into a plain digit string.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	b.Grow(n + n/3)
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
