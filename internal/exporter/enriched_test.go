package exporter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/pkg/contracts/domain"
)

func enrichedTx(matched bool) domain.EnrichedTransaction {
	e := domain.EnrichedTransaction{
		ValidatedTransaction: domain.ValidatedTransaction{
			Transaction: domain.Transaction{
				TransactionID: "T1",
				Date:          "2024-01-15",
				ProductID:     "P101",
				ProductName:   "Wireless Mouse",
				Quantity:      2,
				UnitPrice:     10.5,
				CustomerID:    "C1",
				Region:        "North",
			},
			Amount: 21,
		},
	}
	if matched {
		category, brand, rating := "Tools", "Acme", 4.5
		e.APICategory = &category
		e.APIBrand = &brand
		e.APIRating = &rating
		e.APIMatch = true
	}
	return e
}

func TestEnrichedExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enriched_sales_data.txt")

	err := NewEnrichedExporter(nil).Export(context.Background(), path, []domain.EnrichedTransaction{
		enrichedTx(true),
		enrichedTx(false),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, strings.Join(domain.EnrichedHeader, "|"), lines[0])
	assert.Equal(t, "T1|2024-01-15|P101|Wireless Mouse|2|10.5|C1|North|Tools|Acme|4.5|true", lines[1])
	assert.Equal(t, "T1|2024-01-15|P101|Wireless Mouse|2|10.5|C1|North||||false", lines[2])
}

func TestEnrichedExporter_ExportEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enriched_sales_data.txt")

	err := NewEnrichedExporter(nil).Export(context.Background(), path, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(domain.EnrichedHeader, "|")+"\n", string(data))
}

func TestEnrichedExporter_StorageError(t *testing.T) {
	dir := t.TempDir()
	// A directory at the target path makes the open fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "taken"), 0755))

	err := NewEnrichedExporter(nil).Export(context.Background(), filepath.Join(dir, "taken"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save enriched data")
}
