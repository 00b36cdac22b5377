package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"salescli/internal/config"
	"salescli/internal/dataprocessing"
	"salescli/internal/enrichment"
	"salescli/internal/exporter"
	"salescli/internal/files"
	"salescli/internal/report"
)

const totalSteps = 10

// Options controls a single pipeline run. Filter fields given here bypass the
// interactive prompt for that filter.
type Options struct {
	Region         string
	MinAmount      *float64
	MaxAmount      *float64
	NoPrompt       bool
	ExportWorkbook bool
}

// Pipeline wires all stages of the sales analytics run: read, parse,
// validate/filter, analytics, catalog fetch, enrichment, exports and report.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	opts   Options

	stdin  *bufio.Reader
	stdout io.Writer

	reader   *files.Reader
	catalog  *enrichment.Client
	enriched *exporter.EnrichedExporter
	report   *report.Generator
	workbook *exporter.WorkbookExporter
}

// NewPipeline assembles a pipeline from configuration
func NewPipeline(cfg *config.Config, logger *slog.Logger, opts Options) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:      cfg,
		logger:   logger,
		opts:     opts,
		stdin:    bufio.NewReader(os.Stdin),
		stdout:   os.Stdout,
		reader:   files.NewReader(logger),
		catalog:  enrichment.NewClient(cfg.Catalog, logger),
		enriched: exporter.NewEnrichedExporter(logger),
		report:   report.NewGenerator(cfg.Report.CurrencySymbol, cfg.Report.TopN, cfg.Report.LowThreshold, logger),
		workbook: exporter.NewWorkbookExporter(cfg.Report.TopN, cfg.Report.LowThreshold, logger),
	}
}

// Run executes the whole pipeline. Collaborator failures (missing ledger,
// unreachable catalog, export write failures) are degraded and reported;
// only unexpected conditions propagate to the caller.
func (p *Pipeline) Run(ctx context.Context) error {
	p.banner("SALES ANALYTICS SYSTEM")

	// [1/10] Read the ledger.
	p.step(1, "Reading sales data...")
	lines := p.readLedger(ctx)
	p.done("Successfully read %d transactions", len(lines))

	// [2/10] Parse.
	p.step(2, "Parsing and cleaning data...")
	transactions := dataprocessing.ParseTransactions(lines)
	p.done("Parsed %d records", len(transactions))

	// [3/10] Preview pass: surface filter options before anything is applied.
	p.step(3, "Filter Options Available:")
	_, _, preview := dataprocessing.ValidateAndFilter(transactions, dataprocessing.FilterOptions{})
	p.printf("Regions: %s\n", strings.Join(preview.AvailableRegions, ", "))
	p.printf("Amount Range: %s - %s\n",
		exporter.FormatMoney(p.cfg.Report.CurrencySymbol, preview.MinAmount),
		exporter.FormatMoney(p.cfg.Report.CurrencySymbol, preview.MaxAmount))

	filters := p.chooseFilters()

	// [4/10] Validate and filter.
	p.step(4, "Validating transactions...")
	valid, invalid, summary := dataprocessing.ValidateAndFilter(transactions, filters)
	p.done("Valid: %d | Invalid: %d", len(valid), invalid)
	p.logger.InfoContext(ctx, "validation complete",
		slog.Int("total_input", summary.TotalInput),
		slog.Int("invalid", summary.Invalid),
		slog.Int("filtered_by_region", summary.FilteredByRegion),
		slog.Int("filtered_by_amount", summary.FilteredByAmount),
		slog.Int("final_count", summary.FinalCount))

	// [5/10] Analytics.
	p.step(5, "Analyzing sales data...")
	totalRevenue := dataprocessing.CalculateTotalRevenue(valid)
	peak := dataprocessing.FindPeakSalesDay(valid)
	p.logger.InfoContext(ctx, "analytics complete",
		slog.Float64("total_revenue", totalRevenue),
		slog.Int("regions", len(dataprocessing.RegionWiseSales(valid))),
		slog.String("peak_day", peak.Date))
	p.done("Analysis complete")

	// [6/10] Catalog fetch.
	p.step(6, "Fetching product data from API...")
	products := p.catalog.FetchAllProducts(ctx)
	p.done("Fetched %d products", len(products))

	// [7/10] Enrich.
	p.step(7, "Enriching sales data...")
	mapping := enrichment.BuildProductMapping(products)
	enriched := enrichment.Merge(valid, mapping)
	matched := enrichment.MatchedCount(enriched)
	successRate := 0.0
	if len(enriched) > 0 {
		successRate = float64(matched) / float64(len(enriched)) * 100
	}
	p.done("Enriched %d/%d transactions (%.1f%%)", matched, len(enriched), successRate)

	// [8/10] Save enriched export.
	p.step(8, "Saving enriched data...")
	if err := p.enriched.Export(ctx, p.cfg.EnrichedPath(), enriched); err != nil {
		p.fail("Failed to save enriched data: %v", err)
	} else {
		p.done("Saved to: %s", p.cfg.EnrichedPath())
	}

	// [9/10] Report (and optional workbook).
	p.step(9, "Generating report...")
	if err := p.report.WriteFile(ctx, p.cfg.ReportPath(), valid, enriched); err != nil {
		p.fail("Failed to generate report: %v", err)
	} else {
		p.done("Report saved to: %s", p.cfg.ReportPath())
	}
	if p.opts.ExportWorkbook {
		if err := p.workbook.Export(ctx, p.cfg.WorkbookPath(), valid); err != nil {
			p.fail("Failed to save workbook: %v", err)
		} else {
			p.done("Workbook saved to: %s", p.cfg.WorkbookPath())
		}
	}

	// [10/10] Done.
	p.step(10, "Process Complete!")
	p.printf("%s\n", strings.Repeat("=", 40))
	return nil
}

// readLedger loads raw lines, degrading a missing or unreadable ledger to an
// empty run rather than aborting.
func (p *Pipeline) readLedger(ctx context.Context) []string {
	path := p.cfg.LedgerPath()
	lines, err := p.reader.ReadSalesData(path)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to read ledger",
			slog.String("path", path),
			slog.String("error", err.Error()))
		p.fail("Could not read %s: %v", path, err)
		return nil
	}
	return lines
}

// chooseFilters resolves the filter options for this run, interactively when
// allowed and none were supplied up front.
func (p *Pipeline) chooseFilters() dataprocessing.FilterOptions {
	filters := dataprocessing.FilterOptions{
		Region:    p.opts.Region,
		MinAmount: p.opts.MinAmount,
		MaxAmount: p.opts.MaxAmount,
	}

	if p.opts.NoPrompt || filters.Region != "" || filters.MinAmount != nil || filters.MaxAmount != nil {
		return filters
	}

	answer := strings.ToLower(p.prompt("\nDo you want to filter data? (y/n): "))
	if answer != "y" {
		p.printf("\nNo filters applied.\n\n")
		return filters
	}

	filters.Region = p.prompt("Enter region (or leave blank for all): ")
	filters.MinAmount = p.promptAmount("Enter minimum amount (or leave blank): ")
	filters.MaxAmount = p.promptAmount("Enter maximum amount (or leave blank): ")
	p.printf("\nApplying filters...\n\n")
	return filters
}

// prompt reads a single trimmed line from stdin.
func (p *Pipeline) prompt(label string) string {
	p.printf("%s", label)
	line, err := p.stdin.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

// promptAmount reads an optional numeric bound; unparsable input is ignored.
func (p *Pipeline) promptAmount(label string) *float64 {
	raw := p.prompt(label)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.printf("Ignoring invalid amount %q\n", raw)
		return nil
	}
	return &value
}

func (p *Pipeline) banner(title string) {
	line := strings.Repeat("=", 40)
	p.printf("%s\n%s\n%s\n\n", line, title, line)
}

func (p *Pipeline) step(n int, text string) {
	p.printf("[%d/%d] %s\n", n, totalSteps, text)
}

func (p *Pipeline) done(format string, args ...interface{}) {
	p.printf("✓ "+format+"\n\n", args...)
}

func (p *Pipeline) fail(format string, args ...interface{}) {
	p.printf("✗ "+format+"\n\n", args...)
}

func (p *Pipeline) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.stdout, format, args...)
}
