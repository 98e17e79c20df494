package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kunnath/pdf-financial-analyzer/internal/ingest"
	"github.com/kunnath/pdf-financial-analyzer/pkg/config"
)

type queryCmd struct {
	docPath         string
	sourceCurrency  string
	displayCurrency string
}

func newQueryCmd() *cobra.Command {
	qc := &queryCmd{}
	cmd := &cobra.Command{
		Use:   "query [question]",
		Short: "Ask a question about a document dump",
		Args:  cobra.MinimumNArgs(1),
		RunE:  qc.run,
	}

	cmd.Flags().StringVar(&qc.docPath, "doc", "", "Path to the document dump (.json, .csv or .xlsx)")
	cmd.Flags().StringVar(&qc.sourceCurrency, "source", "", "Currency amounts are assumed to be in (default from config)")
	cmd.Flags().StringVar(&qc.displayCurrency, "display", "", "Currency results are reported in (default from config)")

	_ = cmd.MarkFlagRequired("doc")

	return cmd
}

func (qc *queryCmd) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if qc.sourceCurrency == "" {
		qc.sourceCurrency = cfg.Analyzer.SourceCurrency
	}
	if qc.displayCurrency == "" {
		qc.displayCurrency = cfg.Analyzer.DisplayCurrency
	}

	logger := newLogger()
	service, err := newService(cfg, logger)
	if err != nil {
		return err
	}

	doc, err := ingest.Load(qc.docPath)
	if err != nil {
		return err
	}

	analysis, err := service.Analyze(doc, qc.sourceCurrency, qc.displayCurrency)
	if err != nil {
		return err
	}

	answer, err := service.Answer(strings.Join(args, " "), analysis)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}
