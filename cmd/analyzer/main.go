// Command analyzer runs the sales analytics pipeline: it ingests the
// pipe-delimited transaction ledger, validates and optionally filters it,
// computes the business analytics, enriches records from the remote product
// catalog and writes the enriched export plus the text report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"salescli/internal/app"
	"salescli/internal/config"
	"salescli/internal/infrastructure"
)

func main() {
	ledger := flag.String("ledger", "", "input ledger file (defaults to data/sales_data.txt relative to the base directory)")
	region := flag.String("region", "", "filter: keep only this region")
	minAmount := flag.Float64("min", -1, "filter: minimum transaction amount")
	maxAmount := flag.Float64("max", -1, "filter: maximum transaction amount")
	noPrompt := flag.Bool("no-prompt", false, "skip the interactive filter prompt")
	excel := flag.Bool("excel", false, "also export the analytics workbook (.xlsx)")
	flag.Parse()

	// Anything unexpected bubbling up ends as one short diagnostic, never a
	// raw fault.
	defer func() {
		if rec := recover(); rec != nil {
			fmt.Fprintln(os.Stderr, "\nSomething went wrong.")
			fmt.Fprintf(os.Stderr, "Error: %v\n", rec)
			fmt.Fprintln(os.Stderr, "Please check your files and try again.")
			os.Exit(1)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to prepare directories: %v\n", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *ledger != "" {
		cfg.Paths.LedgerFile = *ledger
	}

	opts := app.Options{
		Region:         *region,
		NoPrompt:       *noPrompt,
		ExportWorkbook: *excel,
	}
	if *minAmount >= 0 {
		opts.MinAmount = minAmount
	}
	if *maxAmount >= 0 {
		opts.MaxAmount = maxAmount
	}

	runID := uuid.NewString()
	ctx := infrastructure.WithRunID(context.Background(), runID)

	logger.InfoContext(ctx, "starting sales analytics pipeline",
		slog.String("ledger", cfg.LedgerPath()),
		slog.Bool("no_prompt", *noPrompt))

	pipeline := app.NewPipeline(cfg, logger, opts)
	if err := pipeline.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "pipeline failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Pipeline failed: %v\n", err)
		os.Exit(1)
	}
}
