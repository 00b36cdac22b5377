package exporter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salescli/pkg/contracts/domain"
)

func workbookTx(id, date, productID, name string, qty int, price float64, customer, region string) domain.ValidatedTransaction {
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

func TestWorkbookExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales_analysis.xlsx")
	transactions := []domain.ValidatedTransaction{
		workbookTx("T1", "2024-01-15", "P101", "Widget", 2, 10, "C1", "North"),
		workbookTx("T2", "2024-01-15", "P102", "Gadget", 5, 8, "C2", "South"),
		workbookTx("T3", "2024-01-16", "P101", "Widget", 1, 10, "C1", "North"),
	}

	err := NewWorkbookExporter(5, 10, nil).Export(context.Background(), path, transactions)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Regions", "Products", "Customers", "Daily"}, f.GetSheetList())

	revenue, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "70", revenue)

	count, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "3", count)

	peakDate, err := f.GetCellValue("Summary", "B5")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", peakDate)

	topRegion, err := f.GetCellValue("Regions", "A2")
	require.NoError(t, err)
	assert.Equal(t, "South", topRegion)

	topProduct, err := f.GetCellValue("Products", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Gadget", topProduct)

	firstDay, err := f.GetCellValue("Daily", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", firstDay)
}

func TestWorkbookExporter_ExportEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales_analysis.xlsx")

	err := NewWorkbookExporter(0, 0, nil).Export(context.Background(), path, nil)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	revenue, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "0", revenue)
}
