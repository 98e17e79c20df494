package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kunnath/pdf-financial-analyzer/internal/domain/analyzer"
	"github.com/kunnath/pdf-financial-analyzer/internal/export"
	"github.com/kunnath/pdf-financial-analyzer/internal/ingest"
	"github.com/kunnath/pdf-financial-analyzer/pkg/config"
)

type analyzeCmd struct {
	docPath         string
	sourceCurrency  string
	displayCurrency string
	csvPath         string
	xlsxPath        string
	jsonOut         bool
}

func newAnalyzeCmd() *cobra.Command {
	ac := &analyzeCmd{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a document dump and print its summary",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.docPath, "doc", "", "Path to the document dump (.json, .csv or .xlsx)")
	cmd.Flags().StringVar(&ac.sourceCurrency, "source", "", "Currency amounts are assumed to be in (default from config)")
	cmd.Flags().StringVar(&ac.displayCurrency, "display", "", "Currency results are reported in (default from config)")
	cmd.Flags().StringVar(&ac.csvPath, "csv", "", "Write extracted amounts to this CSV file")
	cmd.Flags().StringVar(&ac.xlsxPath, "xlsx", "", "Write the full analysis to this Excel workbook")
	cmd.Flags().BoolVar(&ac.jsonOut, "json", false, "Print the full analysis as JSON instead of a summary")

	_ = cmd.MarkFlagRequired("doc")

	return cmd
}

func (ac *analyzeCmd) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if ac.sourceCurrency == "" {
		ac.sourceCurrency = cfg.Analyzer.SourceCurrency
	}
	if ac.displayCurrency == "" {
		ac.displayCurrency = cfg.Analyzer.DisplayCurrency
	}

	logger := newLogger()
	service, err := newService(cfg, logger)
	if err != nil {
		return err
	}

	doc, err := ingest.Load(ac.docPath)
	if err != nil {
		return err
	}

	analysis, err := service.Analyze(doc, ac.sourceCurrency, ac.displayCurrency)
	if err != nil {
		return err
	}

	if err := ac.export(cfg, analysis); err != nil {
		return err
	}

	if ac.jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}
	return ac.printSummary(cmd, cfg, analysis)
}

func (ac *analyzeCmd) export(cfg *config.Config, analysis *analyzer.Analysis) error {
	if ac.csvPath != "" {
		f, err := os.Create(ac.csvPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteObservationsCSV(f, analysis.Observations()); err != nil {
			return err
		}
	}
	if ac.xlsxPath != "" {
		table, err := cfg.CurrencyTable()
		if err != nil {
			return err
		}
		f, err := os.Create(ac.xlsxPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteWorkbook(f, analysis, table); err != nil {
			return err
		}
	}
	return nil
}

func (ac *analyzeCmd) printSummary(cmd *cobra.Command, cfg *config.Config, analysis *analyzer.Analysis) error {
	out := cmd.OutOrStdout()
	if analysis.Empty() {
		fmt.Fprintln(out, analyzer.NoAmountsMessage)
		return nil
	}

	table, err := cfg.CurrencyTable()
	if err != nil {
		return err
	}
	report := analysis.Report
	display := report.DisplayCurrency
	format := func(v float64) string {
		s, err := table.Format(v, display)
		if err != nil {
			return fmt.Sprintf("%.2f", v)
		}
		return s
	}

	fmt.Fprintf(out, "Pages: %d  Tables: %d\n", analysis.PageCount, analysis.TableCount)
	fmt.Fprintf(out, "Amounts: %d (text %d, table %d)\n",
		report.TotalCount, len(analysis.TextObservations), len(analysis.TableObservations))
	fmt.Fprintf(out, "Total: %s  Average: %s\n", format(report.Sum), format(report.Mean))
	fmt.Fprintf(out, "Range: %s - %s\n", format(report.Min), format(report.Max))
	fmt.Fprintf(out, "Credits: %d (%s)  Debits: %d (%s)  Net: %s\n",
		report.Credit.Count, format(report.Credit.Total),
		report.Debit.Count, format(report.Debit.Total),
		format(report.NetBalance))
	return nil
}

