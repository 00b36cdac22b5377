package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"salescli/internal/dataprocessing"
	"salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// WorkbookExporter writes the analytics views to an Excel workbook with one
// sheet per view, for users who want to slice the numbers beyond the fixed
// text report.
type WorkbookExporter struct {
	topN         int
	lowThreshold int
	logger       *slog.Logger
}

// NewWorkbookExporter creates a workbook exporter
func NewWorkbookExporter(topN, lowThreshold int, logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	if topN <= 0 {
		topN = dataprocessing.DefaultTopN
	}
	if lowThreshold <= 0 {
		lowThreshold = dataprocessing.DefaultLowThreshold
	}
	return &WorkbookExporter{topN: topN, lowThreshold: lowThreshold, logger: logger}
}

// Export recomputes the analytics views over the valid set and writes them to
// an .xlsx workbook at path.
func (w *WorkbookExporter) Export(ctx context.Context, path string, transactions []domain.ValidatedTransaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummarySheet(f, transactions); err != nil {
		return errors.NewStorageError("failed to build workbook summary sheet", err)
	}
	w.writeRegionSheet(f, dataprocessing.RegionWiseSales(transactions))
	w.writeProductSheet(f, dataprocessing.TopSellingProducts(transactions, w.topN))
	w.writeCustomerSheet(f, dataprocessing.CustomerAnalysis(transactions))
	w.writeDailySheet(f, dataprocessing.DailySalesTrend(transactions))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create workbook directory", err)
	}
	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("failed to save workbook", err).
			WithContext("path", path)
	}

	w.logger.InfoContext(ctx, "workbook saved",
		slog.String("path", path),
		slog.Int("record_count", len(transactions)))
	return nil
}

func (w *WorkbookExporter) writeSummarySheet(f *excelize.File, transactions []domain.ValidatedTransaction) error {
	const sheet = "Summary"
	f.SetSheetName(f.GetSheetName(0), sheet)

	totalRevenue := dataprocessing.CalculateTotalRevenue(transactions)
	avgOrder := 0.0
	if len(transactions) > 0 {
		avgOrder = totalRevenue / float64(len(transactions))
	}
	peak := dataprocessing.FindPeakSalesDay(transactions)

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Revenue", totalRevenue},
		{"Total Transactions", len(transactions)},
		{"Average Order Value", avgOrder},
		{"Peak Sales Day", peak.Date},
		{"Peak Day Revenue", peak.Revenue},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (w *WorkbookExporter) writeRegionSheet(f *excelize.File, regions []domain.RegionStats) {
	const sheet = "Regions"
	f.NewSheet(sheet)
	setRow(f, sheet, 1, []interface{}{"Region", "TotalSales", "Transactions", "Percentage"})
	for i, r := range regions {
		setRow(f, sheet, i+2, []interface{}{r.Region, r.TotalSales, r.TransactionCount, r.Percentage})
	}
}

func (w *WorkbookExporter) writeProductSheet(f *excelize.File, products []domain.ProductStats) {
	const sheet = "Products"
	f.NewSheet(sheet)
	setRow(f, sheet, 1, []interface{}{"ProductName", "QuantitySold", "Revenue"})
	for i, p := range products {
		setRow(f, sheet, i+2, []interface{}{p.Name, p.Quantity, p.Revenue})
	}
}

func (w *WorkbookExporter) writeCustomerSheet(f *excelize.File, customers []domain.CustomerStats) {
	const sheet = "Customers"
	f.NewSheet(sheet)
	setRow(f, sheet, 1, []interface{}{"CustomerID", "TotalSpent", "Orders", "AvgOrderValue"})
	for i, c := range customers {
		setRow(f, sheet, i+2, []interface{}{c.CustomerID, c.TotalSpent, c.PurchaseCount, c.AvgOrderValue})
	}
}

func (w *WorkbookExporter) writeDailySheet(f *excelize.File, days []domain.DailyStats) {
	const sheet = "Daily"
	f.NewSheet(sheet)
	setRow(f, sheet, 1, []interface{}{"Date", "Revenue", "Transactions", "UniqueCustomers"})
	for i, d := range days {
		setRow(f, sheet, i+2, []interface{}{d.Date, d.Revenue, d.TransactionCount, d.UniqueCustomers})
	}
}

// setRow writes one row, ignoring coordinate errors that cannot occur for
// row numbers derived from slice indexes.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) {
	cell := fmt.Sprintf("A%d", row)
	_ = f.SetSheetRow(sheet, cell, &values)
}
