// Package query answers free-text analytic questions against an
// already-computed amount collection. Intent resolution is a fixed,
// ordered keyword cascade; the first matching intent wins, and intents
// needing numeric arguments fall back to the summary when the question
// carries no numbers.
package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/kunnath/pdf-financial-analyzer/internal/domain/aggregate"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/currency"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/extract"
)

// NoDataAnswer is returned when the collection has nothing to analyze.
const NoDataAnswer = "No data available to analyze."

var (
	numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
	pagePattern   = regexp.MustCompile(`page\s+(\d+)`)
	wordCR        = regexp.MustCompile(`\bcr\b`)
	wordDR        = regexp.MustCompile(`\bdr\b`)
)

// Responder renders natural-language answers. All amounts go through the
// currency table's Format.
type Responder struct {
	table *currency.Table
}

// New creates a Responder bound to a currency table.
func New(table *currency.Table) *Responder {
	return &Responder{table: table}
}

type question struct {
	lower   string
	numbers []float64
	values  []float64           // observation values in display currency
	pages   map[int][]float64   // page number -> display values from that page
	report  aggregate.Report
	display string
}

// Answer resolves the query against the observations and their aggregate.
// The display currency is the one the report was computed in.
func (r *Responder) Answer(queryText string, observations []extract.Observation, report aggregate.Report) (string, error) {
	if len(observations) == 0 {
		return NoDataAnswer, nil
	}

	q := &question{
		lower:   strings.ToLower(queryText),
		report:  report,
		display: report.DisplayCurrency,
		pages:   make(map[int][]float64),
	}
	for _, m := range numberPattern.FindAllString(q.lower, -1) {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			q.numbers = append(q.numbers, v)
		}
	}
	for _, obs := range observations {
		v, err := r.table.Convert(obs.Value, obs.SourceCurrency, report.DisplayCurrency)
		if err != nil {
			continue
		}
		q.values = append(q.values, v)
		if obs.Origin.Source == extract.SourceText {
			q.pages[obs.Origin.Page] = append(q.pages[obs.Origin.Page], v)
		}
	}

	// Precedence order: credit/debit, total, count, average, max, min,
	// range, comparison, page, default summary.
	switch {
	case r.isCreditDebitQuery(q):
		return r.answerCreditDebit(q)
	case containsAny(q.lower, "total", "sum", "altogether"):
		return r.answerTotal(q)
	case containsAny(q.lower, "how many", "count", "number of"):
		return fmt.Sprintf("Total records: %d amounts found", len(q.values)), nil
	case containsAny(q.lower, "average", "mean"):
		return r.render("Average amount", q.report.Mean, q.display)
	case containsAny(q.lower, "maximum", "max", "highest", "largest"):
		return r.render("Highest amount", q.report.Max, q.display)
	case containsAny(q.lower, "minimum", "min", "lowest", "smallest"):
		return r.render("Lowest amount", q.report.Min, q.display)
	case containsAny(q.lower, "between", "range") && len(q.numbers) >= 2:
		return r.answerRange(q)
	case containsAny(q.lower, "greater than", "more than", "above") && len(q.numbers) >= 1:
		return r.answerComparison(q, true)
	case containsAny(q.lower, "less than", "below", "under") && len(q.numbers) >= 1:
		return r.answerComparison(q, false)
	case strings.Contains(q.lower, "page"):
		if answer, ok, err := r.answerPage(q); ok || err != nil {
			return answer, err
		}
		return r.answerSummary(q)
	default:
		return r.answerSummary(q)
	}
}

func (r *Responder) isCreditDebitQuery(q *question) bool {
	return containsAny(q.lower, "credit", "debit") ||
		wordCR.MatchString(q.lower) || wordDR.MatchString(q.lower) ||
		(strings.Contains(q.lower, "net") && strings.Contains(q.lower, "balance"))
}

func (r *Responder) answerCreditDebit(q *question) (string, error) {
	switch {
	case strings.Contains(q.lower, "credit") || wordCR.MatchString(q.lower):
		return r.renderDirection("Credit (CR)", q.report.Credit, q.display)
	case strings.Contains(q.lower, "debit") || wordDR.MatchString(q.lower):
		return r.renderDirection("Debit (DR)", q.report.Debit, q.display)
	default:
		credits, err := r.table.Format(q.report.Credit.Total, q.display)
		if err != nil {
			return "", err
		}
		debits, err := r.table.Format(q.report.Debit.Total, q.display)
		if err != nil {
			return "", err
		}
		net, err := r.table.Format(q.report.NetBalance, q.display)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Net balance: %s (credits %s over %d transactions, debits %s over %d transactions)",
			net, credits, q.report.Credit.Count, debits, q.report.Debit.Count), nil
	}
}

func (r *Responder) renderDirection(label string, s aggregate.Summary, display string) (string, error) {
	total, err := r.table.Format(s.Total, display)
	if err != nil {
		return "", err
	}
	mean, err := r.table.Format(s.Mean, display)
	if err != nil {
		return "", err
	}
	max, err := r.table.Format(s.Max, display)
	if err != nil {
		return "", err
	}
	min, err := r.table.Format(s.Min, display)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s transactions: count %d, total %s, average %s, highest %s, lowest %s",
		label, s.Count, total, mean, max, min), nil
}

func (r *Responder) answerTotal(q *question) (string, error) {
	return r.render("Total amount", q.report.Sum, q.display)
}

func (r *Responder) answerRange(q *question) (string, error) {
	low, high := q.numbers[0], q.numbers[1]
	if low > high {
		low, high = high, low
	}

	count := 0
	total := 0.0
	for _, v := range q.values {
		if v >= low && v <= high {
			count++
			total += v
		}
	}

	lowStr, err := r.table.Format(low, q.display)
	if err != nil {
		return "", err
	}
	highStr, err := r.table.Format(high, q.display)
	if err != nil {
		return "", err
	}
	totalStr, err := r.table.Format(total, q.display)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Amounts between %s and %s: %d records, total %s",
		lowStr, highStr, count, totalStr), nil
}

func (r *Responder) answerComparison(q *question, above bool) (string, error) {
	threshold := q.numbers[0]

	count := 0
	total := 0.0
	for _, v := range q.values {
		if (above && v > threshold) || (!above && v < threshold) {
			count++
			total += v
		}
	}

	word := "above"
	if !above {
		word = "below"
	}
	thresholdStr, err := r.table.Format(threshold, q.display)
	if err != nil {
		return "", err
	}
	totalStr, err := r.table.Format(total, q.display)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Amounts %s %s: %d records, total %s",
		word, thresholdStr, count, totalStr), nil
}

// answerPage handles "page N" questions. ok is false when no page number is
// present, which sends the query to the default summary.
func (r *Responder) answerPage(q *question) (string, bool, error) {
	m := pagePattern.FindStringSubmatch(q.lower)
	if m == nil {
		return "", false, nil
	}
	page, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false, nil
	}

	values := q.pages[page]
	if len(values) == 0 {
		return fmt.Sprintf("Page %d: no amounts found", page), true, nil
	}

	total := 0.0
	for _, v := range values {
		total += v
	}
	totalStr, err := r.table.Format(total, q.display)
	if err != nil {
		return "", true, err
	}
	return fmt.Sprintf("Page %d: %d amounts, total %s", page, len(values), totalStr), true, nil
}

func (r *Responder) answerSummary(q *question) (string, error) {
	total, err := r.table.Format(q.report.Sum, q.display)
	if err != nil {
		return "", err
	}
	mean, err := r.table.Format(q.report.Mean, q.display)
	if err != nil {
		return "", err
	}
	min, err := r.table.Format(q.report.Min, q.display)
	if err != nil {
		return "", err
	}
	max, err := r.table.Format(q.report.Max, q.display)
	if err != nil {
		return "", err
	}

	answer := fmt.Sprintf("Summary: %d records, total %s, average %s, range %s - %s",
		q.report.TotalCount, total, mean, min, max)
	if hint := suggestKeyword(q.lower); hint != "" {
		answer += fmt.Sprintf(` (did you mean %q?)`, hint)
	}
	return answer, nil
}

func (r *Responder) render(label string, amount float64, display string) (string, error) {
	formatted, err := r.table.Format(amount, display)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %s", label, formatted), nil
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// suggestionKeywords are the recognizable query words offered back when a
// question misses every intent, typically because of a typo.
var suggestionKeywords = []string{
	"total", "count", "average", "highest", "lowest",
	"credit", "debit", "balance", "between", "above", "below", "page",
}

// suggestKeyword finds the closest recognized keyword to any word in the
// query, within a small edit distance. Returns "" when nothing is close.
func suggestKeyword(lower string) string {
	best := ""
	bestDist := 3
	for _, tok := range strings.Fields(lower) {
		tok = strings.Trim(tok, "?!.,'\"")
		if len(tok) < 4 {
			continue
		}
		for _, kw := range suggestionKeywords {
			d := fuzzy.LevenshteinDistance(tok, kw)
			if d > 0 && d < bestDist {
				best, bestDist = kw, d
			}
		}
	}
	return best
}
