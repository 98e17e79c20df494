// Package ingest reads document dumps into the document model. The analyzer
// itself never touches a PDF; it consumes what external collaborators
// produced, and this package accepts the three interchange shapes they emit:
// a JSON dump, a CSV grid, or an Excel workbook (one table per sheet).
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kunnath/pdf-financial-analyzer/internal/domain/document"
)

// Load reads a document dump from a file, picking the format by extension.
func Load(path string) (document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return document.Document{}, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(f)
	case ".csv":
		return ReadCSV(f)
	case ".xlsx":
		return ReadExcel(f)
	default:
		return document.Document{}, fmt.Errorf("unsupported document format %q", filepath.Ext(path))
	}
}

// ReadJSON decodes a full document dump.
func ReadJSON(r io.Reader) (document.Document, error) {
	var doc document.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return doc, fmt.Errorf("parse json document: %w", err)
	}
	return doc, nil
}

// ReadCSV reads one CSV grid as a single-table document. The first record is
// the header row; every following record becomes a row keyed by those
// headers. Short records leave trailing cells absent.
func ReadCSV(r io.Reader) (document.Document, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return document.Document{}, fmt.Errorf("parse csv document: %w", err)
	}
	if len(records) == 0 {
		return document.Document{}, nil
	}

	tbl := gridToTable(1, records)
	if len(tbl.Rows) == 0 {
		return document.Document{}, nil
	}
	return document.Document{Tables: []document.Table{tbl}}, nil
}

// ReadExcel reads a workbook as one table per non-empty sheet, in sheet
// order.
func ReadExcel(r io.Reader) (document.Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return document.Document{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var doc document.Document
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return document.Document{}, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		tbl := gridToTable(len(doc.Tables)+1, rows)
		if len(tbl.Rows) == 0 {
			continue
		}
		doc.Tables = append(doc.Tables, tbl)
	}
	return doc, nil
}

// gridToTable keys each data record by the header row. Rows whose cells are
// all empty are dropped.
func gridToTable(index int, grid [][]string) document.Table {
	if len(grid) < 2 {
		return document.Table{Index: index}
	}

	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		headers[i] = strings.TrimSpace(h)
	}

	tbl := document.Table{Index: index}
	for _, record := range grid[1:] {
		cells := make(map[string]string, len(headers))
		empty := true
		for i, header := range headers {
			if header == "" || i >= len(record) {
				continue
			}
			cells[header] = record[i]
			if strings.TrimSpace(record[i]) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		tbl.Rows = append(tbl.Rows, document.Row{Columns: headers, Cells: cells})
	}
	return tbl
}
