package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kunnath/pdf-financial-analyzer/internal/domain/analyzer"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/currency"
)

// Sheet names of the exported workbook.
const (
	sheetTextAmounts  = "Text_Amounts"
	sheetTableAmounts = "Table_Amounts"
	sheetTransactions = "Transactions"
	sheetSummary      = "Summary"
)

// WriteWorkbook writes a full analysis as an Excel workbook with one sheet
// per collection plus a formatted summary sheet.
func WriteWorkbook(w io.Writer, analysis *analyzer.Analysis, table *currency.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeTextAmounts(f, analysis); err != nil {
		return err
	}
	if err := writeTableAmounts(f, analysis); err != nil {
		return err
	}
	if err := writeTransactions(f, analysis); err != nil {
		return err
	}
	if err := writeSummary(f, analysis, table); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeTextAmounts(f *excelize.File, analysis *analyzer.Analysis) error {
	if _, err := f.NewSheet(sheetTextAmounts); err != nil {
		return fmt.Errorf("sheet %s: %w", sheetTextAmounts, err)
	}
	if err := f.SetSheetRow(sheetTextAmounts, "A1",
		&[]interface{}{"page", "amount", "currency", "raw_text"}); err != nil {
		return err
	}
	for i, obs := range analysis.TextObservations {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{obs.Origin.Page, obs.Value, obs.SourceCurrency, obs.RawText}
		if err := f.SetSheetRow(sheetTextAmounts, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeTableAmounts(f *excelize.File, analysis *analyzer.Analysis) error {
	if _, err := f.NewSheet(sheetTableAmounts); err != nil {
		return fmt.Errorf("sheet %s: %w", sheetTableAmounts, err)
	}
	if err := f.SetSheetRow(sheetTableAmounts, "A1",
		&[]interface{}{"table", "column", "row", "amount", "currency", "raw_text"}); err != nil {
		return err
	}
	for i, obs := range analysis.TableObservations {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			obs.Origin.Table, obs.Origin.Column, obs.Origin.Row,
			obs.Value, obs.SourceCurrency, obs.RawText,
		}
		if err := f.SetSheetRow(sheetTableAmounts, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeTransactions(f *excelize.File, analysis *analyzer.Analysis) error {
	if _, err := f.NewSheet(sheetTransactions); err != nil {
		return fmt.Errorf("sheet %s: %w", sheetTransactions, err)
	}
	if err := f.SetSheetRow(sheetTransactions, "A1",
		&[]interface{}{"date", "description", "amount", "currency", "direction"}); err != nil {
		return err
	}
	for i, tx := range analysis.Transactions {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{tx.Date, tx.Description, tx.Amount, tx.SourceCurrency, string(tx.Direction)}
		if err := f.SetSheetRow(sheetTransactions, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, analysis *analyzer.Analysis, table *currency.Table) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("sheet %s: %w", sheetSummary, err)
	}

	report := analysis.Report
	display := report.DisplayCurrency
	formatted := func(v float64) interface{} {
		s, err := table.Format(v, display)
		if err != nil {
			return v
		}
		return s
	}

	rows := [][]interface{}{
		{"analysis_id", analysis.ID.String()},
		{"pages", analysis.PageCount},
		{"tables", analysis.TableCount},
		{"display_currency", display},
		{"records", report.TotalCount},
		{"total", formatted(report.Sum)},
		{"average", formatted(report.Mean)},
		{"highest", formatted(report.Max)},
		{"lowest", formatted(report.Min)},
		{"credit_count", report.Credit.Count},
		{"credit_total", formatted(report.Credit.Total)},
		{"debit_count", report.Debit.Count},
		{"debit_total", formatted(report.Debit.Total)},
		{"net_balance", formatted(report.NetBalance)},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
