package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kunnath/pdf-financial-analyzer/internal/domain/analyzer"
	"github.com/kunnath/pdf-financial-analyzer/pkg/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "analyzer",
		Short: "Financial document analyzer",
		Long:  "Extracts monetary amounts from structured document dumps, classifies transactions, and answers analytic questions.",
	}
	root.AddCommand(newAnalyzeCmd(), newQueryCmd(), newServeCmd())
	return root
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

func newService(cfg *config.Config, logger *slog.Logger) (*analyzer.Service, error) {
	table, err := cfg.CurrencyTable()
	if err != nil {
		return nil, fmt.Errorf("currency table: %w", err)
	}
	opts := analyzer.Options{DedupeTableAmounts: cfg.Analyzer.DedupeTableAmounts}
	return analyzer.NewService(table, opts, logger), nil
}
