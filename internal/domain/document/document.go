// Package document defines the plain data structures exchanged with the
// external PDF collaborators. The text collaborator supplies pages, the table
// collaborator supplies cell grids; nothing in this module reads a PDF itself.
package document

import "strings"

// Page is the raw text of a single PDF page. Numbering is 1-based.
type Page struct {
	Number int    `json:"page"`
	Text   string `json:"text"`
}

// Row is one table row: an ordered set of named cells. Columns preserves the
// declared column order, which matters for positional heuristics downstream.
type Row struct {
	Columns []string          `json:"columns"`
	Cells   map[string]string `json:"cells"`
}

// Get returns the trimmed cell value for a column, or "" when absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r.Cells[column])
}

// Values returns the non-empty cell values in declared column order.
func (r Row) Values() []string {
	out := make([]string, 0, len(r.Columns))
	for _, col := range r.Columns {
		if v := r.Get(col); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Table is one extracted table grid. Index is 1-based within the document.
type Table struct {
	Index int   `json:"table"`
	Rows  []Row `json:"rows"`
}

// Columns returns the declared column order of the table, taken from the
// first row that has one.
func (t Table) Columns() []string {
	for _, row := range t.Rows {
		if len(row.Columns) > 0 {
			return row.Columns
		}
	}
	return nil
}

// Document bundles everything the collaborators produced for one PDF.
type Document struct {
	Pages  []Page  `json:"pages"`
	Tables []Table `json:"tables"`
}
