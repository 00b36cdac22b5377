package report

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"salescli/internal/dataprocessing"
	"salescli/internal/enrichment"
	"salescli/internal/errors"
	"salescli/internal/exporter"
	"salescli/pkg/contracts/domain"
)

const bannerWidth = 44

// Generator renders the fixed-layout sales analytics report. All analytics
// views are recomputed from the transaction set on every render; nothing is
// cached between calls.
type Generator struct {
	currency     string
	topN         int
	lowThreshold int
	now          func() time.Time
	logger       *slog.Logger
}

// NewGenerator creates a report generator. topN and lowThreshold fall back to
// the analytics defaults when non-positive.
func NewGenerator(currency string, topN, lowThreshold int, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	if currency == "" {
		currency = "₹"
	}
	if topN <= 0 {
		topN = dataprocessing.DefaultTopN
	}
	if lowThreshold <= 0 {
		lowThreshold = dataprocessing.DefaultLowThreshold
	}
	return &Generator{
		currency:     currency,
		topN:         topN,
		lowThreshold: lowThreshold,
		now:          time.Now,
		logger:       logger,
	}
}

// WriteFile renders the report and writes it to path.
func (g *Generator) WriteFile(ctx context.Context, path string, valid []domain.ValidatedTransaction, enriched []domain.EnrichedTransaction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create report directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create report file", err).
			WithContext("path", path)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := g.Render(w, valid, enriched); err != nil {
		return errors.NewStorageError("failed to render report", err)
	}
	if err := w.Flush(); err != nil {
		return errors.NewStorageError("failed to write report", err).
			WithContext("path", path)
	}

	g.logger.InfoContext(ctx, "report generated",
		slog.String("path", path),
		slog.Int("record_count", len(valid)))
	return nil
}

// Render writes the report document to w. Sections appear in fixed order
// regardless of data; empty collections render an explicit "None".
func (g *Generator) Render(out io.Writer, valid []domain.ValidatedTransaction, enriched []domain.EnrichedTransaction) error {
	w := &sectionWriter{out: out}

	g.renderHeader(w, valid)
	g.renderOverallSummary(w, valid)
	g.renderRegionPerformance(w, valid)
	g.renderTopProducts(w, valid)
	g.renderTopCustomers(w, valid)
	g.renderDailyTrend(w, valid)
	g.renderProductPerformance(w, valid)
	g.renderEnrichmentSummary(w, enriched)

	return w.err
}

func (g *Generator) money(amount float64) string {
	return exporter.FormatMoney(g.currency, amount)
}

func (g *Generator) renderHeader(w *sectionWriter, valid []domain.ValidatedTransaction) {
	w.rule('=')
	w.printf("           SALES ANALYTICS REPORT\n")
	w.printf("         Generated: %s\n", g.now().Format("2006-01-02 15:04:05"))
	w.printf("         Records Processed: %d\n", len(valid))
	w.rule('=')
	w.printf("\n")
}

func (g *Generator) renderOverallSummary(w *sectionWriter, valid []domain.ValidatedTransaction) {
	totalRevenue := dataprocessing.CalculateTotalRevenue(valid)
	avgOrder := 0.0
	if len(valid) > 0 {
		avgOrder = totalRevenue / float64(len(valid))
	}

	dateRange := "N/A"
	if len(valid) > 0 {
		minDate, maxDate := valid[0].Date, valid[0].Date
		for _, tx := range valid[1:] {
			if tx.Date < minDate {
				minDate = tx.Date
			}
			if tx.Date > maxDate {
				maxDate = tx.Date
			}
		}
		dateRange = minDate + " to " + maxDate
	}

	w.section("OVERALL SUMMARY")
	w.printf("Total Revenue:        %s\n", g.money(totalRevenue))
	w.printf("Total Transactions:   %d\n", len(valid))
	w.printf("Average Order Value:  %s\n", g.money(avgOrder))
	w.printf("Date Range:           %s\n\n", dateRange)
}

func (g *Generator) renderRegionPerformance(w *sectionWriter, valid []domain.ValidatedTransaction) {
	regions := dataprocessing.RegionWiseSales(valid)

	w.section("REGION-WISE PERFORMANCE")
	w.printf("%-10s%-15s%-12s%s\n", "Region", "Sales", "% of Total", "Transactions")
	if len(regions) == 0 {
		w.printf("None\n")
	}
	for _, r := range regions {
		w.printf("%-10s%-15s%-12s%d\n",
			r.Region,
			g.money(r.TotalSales),
			exporter.FormatPercent(r.Percentage),
			r.TransactionCount)
	}
	w.printf("\n")
}

func (g *Generator) renderTopProducts(w *sectionWriter, valid []domain.ValidatedTransaction) {
	products := dataprocessing.TopSellingProducts(valid, g.topN)

	w.sectionf("TOP %d PRODUCTS", g.topN)
	w.printf("%-6s%-20s%-10s%s\n", "Rank", "Product Name", "Qty Sold", "Revenue")
	if len(products) == 0 {
		w.printf("None\n")
	}
	for i, p := range products {
		w.printf("%-6d%-20s%-10d%s\n", i+1, p.Name, p.Quantity, g.money(p.Revenue))
	}
	w.printf("\n")
}

func (g *Generator) renderTopCustomers(w *sectionWriter, valid []domain.ValidatedTransaction) {
	customers := dataprocessing.CustomerAnalysis(valid)
	if len(customers) > g.topN {
		customers = customers[:g.topN]
	}

	w.sectionf("TOP %d CUSTOMERS", g.topN)
	w.printf("%-6s%-15s%-15s%s\n", "Rank", "Customer ID", "Total Spent", "Orders")
	if len(customers) == 0 {
		w.printf("None\n")
	}
	for i, c := range customers {
		w.printf("%-6d%-15s%-15s%d\n", i+1, c.CustomerID, g.money(c.TotalSpent), c.PurchaseCount)
	}
	w.printf("\n")
}

func (g *Generator) renderDailyTrend(w *sectionWriter, valid []domain.ValidatedTransaction) {
	trend := dataprocessing.DailySalesTrend(valid)

	w.section("DAILY SALES TREND")
	w.printf("%-12s%-15s%-8s%s\n", "Date", "Revenue", "Txns", "Unique Customers")
	if len(trend) == 0 {
		w.printf("None\n")
	}
	for _, d := range trend {
		w.printf("%-12s%-15s%-8d%d\n", d.Date, g.money(d.Revenue), d.TransactionCount, d.UniqueCustomers)
	}
	w.printf("\n")
}

func (g *Generator) renderProductPerformance(w *sectionWriter, valid []domain.ValidatedTransaction) {
	peak := dataprocessing.FindPeakSalesDay(valid)
	low := dataprocessing.LowPerformingProducts(valid, g.lowThreshold)
	regions := dataprocessing.RegionWiseSales(valid)

	w.section("PRODUCT PERFORMANCE ANALYSIS")

	peakDate := peak.Date
	if peakDate == "" {
		peakDate = "None"
	}
	w.printf("Peak Sales Day: %s | Revenue: %s | Transactions: %d\n\n",
		peakDate, g.money(peak.Revenue), peak.TransactionCount)

	w.printf("Low Performing Products (Quantity < %d)\n", g.lowThreshold)
	if len(low) == 0 {
		w.printf("None\n")
	} else {
		w.printf("%-20s%-10s%s\n", "Product Name", "Qty Sold", "Revenue")
		for _, p := range low {
			w.printf("%-20s%-10d%s\n", p.Name, p.Quantity, g.money(p.Revenue))
		}
	}

	w.printf("\nAverage Transaction Value by Region\n")
	w.printf("%-10s%s\n", "Region", "Avg Transaction Value")
	if len(regions) == 0 {
		w.printf("None\n")
	}
	for _, r := range regions {
		avg := 0.0
		if r.TransactionCount > 0 {
			avg = r.TotalSales / float64(r.TransactionCount)
		}
		w.printf("%-10s%s\n", r.Region, g.money(avg))
	}
	w.printf("\n")
}

func (g *Generator) renderEnrichmentSummary(w *sectionWriter, enriched []domain.EnrichedTransaction) {
	matched := enrichment.MatchedCount(enriched)
	successRate := 0.0
	if len(enriched) > 0 {
		successRate = float64(matched) / float64(len(enriched)) * 100
	}

	w.section("API ENRICHMENT SUMMARY")
	w.printf("Total products enriched: %d\n", matched)
	w.printf("Success rate: %.2f%%\n\n", successRate)

	w.printf("Products that couldn't be enriched:\n")
	unmatched := unmatchedProductNames(enriched)
	if len(unmatched) == 0 {
		w.printf("None\n")
	}
	for _, name := range unmatched {
		w.printf("- %s\n", name)
	}
}

// unmatchedProductNames collects the product names (not IDs) of unmatched
// records as a deduplicated, lexicographically sorted list.
func unmatchedProductNames(enriched []domain.EnrichedTransaction) []string {
	set := make(map[string]struct{})
	for _, tx := range enriched {
		if !tx.APIMatch {
			set[tx.ProductName] = struct{}{}
		}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
