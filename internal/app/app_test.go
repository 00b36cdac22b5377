package app

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/internal/config"
)

const testLedger = `TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
T001|2024-01-15|P1|Wireless Mouse|2|450.00|C001|North
T002|2024-01-15|P2|Mechanical Keyboard|1|3,200.00|C002|South
T003|2024-01-16|P1|Wireless Mouse|1|450.00|C001|North
T004|2024-01-16|P999|Mystery Item|3|100.00|C003|East
X005|2024-01-17|P1|Wireless Mouse|1|450.00|C004|North
T006|2024-01-17|P3|USB Hub|0|250.00|C005|South
`

func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[
			{"id":1,"title":"Mouse","category":"electronics","brand":"Logi","rating":4.2},
			{"id":2,"title":"Keyboard","category":"electronics","brand":"Keychron","rating":4.7}
		],"total":2,"skip":0,"limit":100}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(t *testing.T, catalogURL string) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := &config.Config{
		Paths: config.PathsConfig{
			BaseDir:      base,
			DataDir:      filepath.Join(base, "data"),
			OutputDir:    filepath.Join(base, "output"),
			LogsDir:      filepath.Join(base, "logs"),
			LedgerFile:   "sales_data.txt",
			EnrichedFile: "enriched_sales_data.txt",
			ReportFile:   "sales_report.txt",
			WorkbookFile: "sales_report.xlsx",
		},
		Catalog: config.CatalogConfig{
			BaseURL: catalogURL,
			Limit:   100,
			Timeout: 2 * time.Second,
		},
		Report: config.ReportConfig{
			CurrencySymbol: "₹",
			TopN:           5,
			LowThreshold:   10,
		},
	}
	require.NoError(t, cfg.EnsureDirectories())
	require.NoError(t, os.WriteFile(cfg.LedgerPath(), []byte(testLedger), 0644))
	return cfg
}

func runPipeline(t *testing.T, cfg *config.Config, opts Options, stdin string) string {
	t.Helper()
	p := NewPipeline(cfg, nil, opts)
	var out bytes.Buffer
	p.stdout = &out
	p.stdin = bufio.NewReader(strings.NewReader(stdin))

	require.NoError(t, p.Run(context.Background()))
	return out.String()
}

func TestPipeline_Run(t *testing.T) {
	server := catalogServer(t)
	cfg := testConfig(t, server.URL)

	out := runPipeline(t, cfg, Options{NoPrompt: true}, "")

	assert.Contains(t, out, "[1/10] Reading sales data...")
	assert.Contains(t, out, "✓ Successfully read 6 transactions")
	assert.Contains(t, out, "✓ Parsed 6 records")
	assert.Contains(t, out, "Regions: East, North, South")
	assert.Contains(t, out, "✓ Valid: 4 | Invalid: 2")
	assert.Contains(t, out, "✓ Fetched 2 products")
	assert.Contains(t, out, "✓ Enriched 3/4 transactions (75.0%)")
	assert.Contains(t, out, "[10/10] Process Complete!")

	// Enriched export on disk.
	enriched, err := os.ReadFile(cfg.EnrichedPath())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(enriched), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "|electronics|Logi|4.2|true")
	assert.Contains(t, lines[4], "||||false")

	// Report on disk.
	reportData, err := os.ReadFile(cfg.ReportPath())
	require.NoError(t, err)
	reportText := string(reportData)
	assert.Contains(t, reportText, "SALES ANALYTICS REPORT")
	assert.Contains(t, reportText, "Total Transactions:   4")
	assert.Contains(t, reportText, "API ENRICHMENT SUMMARY")
	assert.Contains(t, reportText, "- Mystery Item")
}

func TestPipeline_RegionFilter(t *testing.T) {
	server := catalogServer(t)
	cfg := testConfig(t, server.URL)

	out := runPipeline(t, cfg, Options{Region: "North", NoPrompt: true}, "")

	assert.Contains(t, out, "✓ Valid: 2 | Invalid: 2")

	reportData, err := os.ReadFile(cfg.ReportPath())
	require.NoError(t, err)
	assert.NotContains(t, string(reportData), "Mechanical Keyboard")
}

func TestPipeline_InteractiveFilters(t *testing.T) {
	server := catalogServer(t)
	cfg := testConfig(t, server.URL)

	out := runPipeline(t, cfg, Options{}, "y\nNorth\n500\n\n")

	assert.Contains(t, out, "Do you want to filter data? (y/n):")
	assert.Contains(t, out, "Applying filters...")
	// Only T001 (900) survives region North with min 500.
	assert.Contains(t, out, "✓ Valid: 1 | Invalid: 2")
}

func TestPipeline_DeclinesFiltering(t *testing.T) {
	server := catalogServer(t)
	cfg := testConfig(t, server.URL)

	out := runPipeline(t, cfg, Options{}, "n\n")

	assert.Contains(t, out, "No filters applied.")
	assert.Contains(t, out, "✓ Valid: 4 | Invalid: 2")
}

func TestPipeline_CatalogDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	cfg := testConfig(t, server.URL)

	out := runPipeline(t, cfg, Options{NoPrompt: true}, "")

	assert.Contains(t, out, "✓ Fetched 0 products")
	assert.Contains(t, out, "✓ Enriched 0/4 transactions (0.0%)")

	// Every export row is unmatched but the files still exist.
	enriched, err := os.ReadFile(cfg.EnrichedPath())
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(enriched), "|false"))
	assert.FileExists(t, cfg.ReportPath())
}

func TestPipeline_MissingLedger(t *testing.T) {
	server := catalogServer(t)
	cfg := testConfig(t, server.URL)
	require.NoError(t, os.Remove(cfg.LedgerPath()))

	out := runPipeline(t, cfg, Options{NoPrompt: true}, "")

	assert.Contains(t, out, "✗ Could not read")
	assert.Contains(t, out, "✓ Valid: 0 | Invalid: 0")
	assert.Contains(t, out, "[10/10] Process Complete!")
}

func TestPipeline_WorkbookExport(t *testing.T) {
	server := catalogServer(t)
	cfg := testConfig(t, server.URL)

	out := runPipeline(t, cfg, Options{NoPrompt: true, ExportWorkbook: true}, "")

	assert.Contains(t, out, "✓ Workbook saved to:")
	assert.FileExists(t, cfg.WorkbookPath())
}
