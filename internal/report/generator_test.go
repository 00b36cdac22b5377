package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/pkg/contracts/domain"
)

func reportTx(id, date, productID, name string, qty int, price float64, customer, region string) domain.ValidatedTransaction {
	return domain.ValidatedTransaction{
		Transaction: domain.Transaction{
			TransactionID: id,
			Date:          date,
			ProductID:     productID,
			ProductName:   name,
			Quantity:      qty,
			UnitPrice:     price,
			CustomerID:    customer,
			Region:        region,
		},
		Amount: float64(qty) * price,
	}
}

func reportSet() []domain.ValidatedTransaction {
	return []domain.ValidatedTransaction{
		reportTx("T1", "2024-01-15", "P101", "Widget", 2, 10, "C1", "North"),
		reportTx("T2", "2024-01-15", "P102", "Gadget", 5, 8, "C2", "South"),
		reportTx("T3", "2024-01-16", "P101", "Widget", 1, 10, "C1", "North"),
	}
}

func enrich(tx domain.ValidatedTransaction, matched bool) domain.EnrichedTransaction {
	e := domain.EnrichedTransaction{ValidatedTransaction: tx}
	if matched {
		category := "Tools"
		e.APICategory = &category
		e.APIMatch = true
	}
	return e
}

func fixedClock() time.Time {
	return time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)
}

func render(t *testing.T, valid []domain.ValidatedTransaction, enriched []domain.EnrichedTransaction) string {
	t.Helper()
	g := NewGenerator("₹", 5, 10, nil)
	g.now = fixedClock

	var buf bytes.Buffer
	require.NoError(t, g.Render(&buf, valid, enriched))
	return buf.String()
}

func TestRender_SectionOrder(t *testing.T) {
	out := render(t, reportSet(), nil)

	sections := []string{
		"SALES ANALYTICS REPORT",
		"OVERALL SUMMARY",
		"REGION-WISE PERFORMANCE",
		"TOP 5 PRODUCTS",
		"TOP 5 CUSTOMERS",
		"DAILY SALES TREND",
		"PRODUCT PERFORMANCE ANALYSIS",
		"API ENRICHMENT SUMMARY",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", s)
		assert.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}
}

func TestRender_Header(t *testing.T) {
	out := render(t, reportSet(), nil)

	assert.Contains(t, out, strings.Repeat("=", 44))
	assert.Contains(t, out, "Generated: 2024-02-01 09:30:00")
	assert.Contains(t, out, "Records Processed: 3")
}

func TestRender_OverallSummary(t *testing.T) {
	out := render(t, reportSet(), nil)

	assert.Contains(t, out, "Total Revenue:        ₹70.00")
	assert.Contains(t, out, "Total Transactions:   3")
	assert.Contains(t, out, "Average Order Value:  ₹23.33")
	assert.Contains(t, out, "Date Range:           2024-01-15 to 2024-01-16")
}

func TestRender_TableRows(t *testing.T) {
	out := render(t, reportSet(), nil)

	// Region rows are fixed width and ordered by sales descending.
	assert.Contains(t, out, "South     ₹40.00         57.14%      1\n")
	assert.Contains(t, out, "North     ₹30.00         42.86%      2\n")

	// Products ranked by quantity.
	assert.Contains(t, out, "1     Gadget              5         ₹40.00\n")
	assert.Contains(t, out, "2     Widget              3         ₹30.00\n")

	// Customers ranked by spend.
	assert.Contains(t, out, "1     C2             ₹40.00         1\n")
	assert.Contains(t, out, "2     C1             ₹30.00         2\n")

	// Daily trend in date order.
	assert.Contains(t, out, "2024-01-15  ₹60.00         2       2\n")
	assert.Contains(t, out, "2024-01-16  ₹10.00         1       1\n")

	assert.Contains(t, out, "Peak Sales Day: 2024-01-15 | Revenue: ₹60.00 | Transactions: 2\n")
}

func TestRender_LowPerformersAndRegionAverages(t *testing.T) {
	out := render(t, reportSet(), nil)

	// Both products sold under 10 units; ascending by quantity.
	lowIdx := strings.Index(out, "Low Performing Products (Quantity < 10)")
	require.GreaterOrEqual(t, lowIdx, 0)
	assert.Contains(t, out[lowIdx:], "Widget              3         ₹30.00\n")
	assert.Contains(t, out[lowIdx:], "Gadget              5         ₹40.00\n")

	avgIdx := strings.Index(out, "Average Transaction Value by Region")
	require.GreaterOrEqual(t, avgIdx, 0)
	assert.Contains(t, out[avgIdx:], "South     ₹40.00\n")
	assert.Contains(t, out[avgIdx:], "North     ₹15.00\n")
}

func TestRender_EnrichmentSummary(t *testing.T) {
	set := reportSet()
	enriched := []domain.EnrichedTransaction{
		enrich(set[0], true),
		enrich(set[1], false),
		enrich(set[2], false),
	}
	out := render(t, set, enriched)

	assert.Contains(t, out, "Total products enriched: 1\n")
	assert.Contains(t, out, "Success rate: 33.33%\n")

	idx := strings.Index(out, "Products that couldn't be enriched:")
	require.GreaterOrEqual(t, idx, 0)
	tail := out[idx:]
	// Unmatched names deduplicated and sorted.
	assert.Contains(t, tail, "- Gadget\n")
	assert.Contains(t, tail, "- Widget\n")
	assert.Less(t, strings.Index(tail, "- Gadget"), strings.Index(tail, "- Widget"))
	assert.Equal(t, 1, strings.Count(tail, "- Widget"))
}

func TestRender_EmptyDataset(t *testing.T) {
	out := render(t, nil, nil)

	assert.Contains(t, out, "Records Processed: 0")
	assert.Contains(t, out, "Total Revenue:        ₹0.00")
	assert.Contains(t, out, "Date Range:           N/A")
	assert.Contains(t, out, "Peak Sales Day: None | Revenue: ₹-1.00 | Transactions: 0")
	assert.Contains(t, out, "Success rate: 0.00%")

	// Every table renders an explicit placeholder.
	assert.Equal(t, 7, strings.Count(out, "None\n"))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "sales_report.txt")

	g := NewGenerator("", 0, 0, nil)
	g.now = fixedClock
	require.NoError(t, g.WriteFile(context.Background(), path, reportSet(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SALES ANALYTICS REPORT")
	assert.Contains(t, string(data), "TOP 5 PRODUCTS")
}

func TestWriteFile_BadPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "taken"), 0755))

	g := NewGenerator("₹", 5, 10, nil)
	err := g.WriteFile(context.Background(), filepath.Join(dir, "taken"), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create report file")
}
