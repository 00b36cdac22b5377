package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salescli/internal/errors"
)

func writeLedger(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales_data.txt")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestReadSalesData(t *testing.T) {
	path := writeLedger(t, []byte(
		"TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region\n"+
			"T1|2024-01-15|P101|Widget|2|10.50|C1|North\n"+
			"T2|2024-01-16|P102|Gadget|1|5.00|C2|South\n"))

	lines, err := NewReader(nil).ReadSalesData(path)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "T1|2024-01-15|P101|Widget|2|10.50|C1|North", lines[0])
	assert.Equal(t, "T2|2024-01-16|P102|Gadget|1|5.00|C2|South", lines[1])
}

func TestReadSalesData_SkipsBlankAndPaddedLines(t *testing.T) {
	path := writeLedger(t, []byte(
		"header\n"+
			"\n"+
			"   \n"+
			"  T1|2024-01-15|P101|Widget|2|10.50|C1|North  \n"+
			"\n"))

	lines, err := NewReader(nil).ReadSalesData(path)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "T1|2024-01-15|P101|Widget|2|10.50|C1|North", lines[0])
}

func TestReadSalesData_WindowsLineEndings(t *testing.T) {
	path := writeLedger(t, []byte("header\r\nT1|a|P1|x|1|1|C1|North\r\n"))

	lines, err := NewReader(nil).ReadSalesData(path)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "T1|a|P1|x|1|1|C1|North", lines[0])
}

func TestReadSalesData_Latin1Fallback(t *testing.T) {
	// 0xE9 is 'é' in latin-1 and invalid as a standalone UTF-8 byte.
	content := append([]byte("header\nT1|2024-01-15|P101|Caf"), 0xE9)
	content = append(content, []byte("|2|10.50|C1|North\n")...)
	path := writeLedger(t, content)

	lines, err := NewReader(nil).ReadSalesData(path)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "T1|2024-01-15|P101|Café|2|10.50|C1|North", lines[0])
}

func TestReadSalesData_HeaderOnly(t *testing.T) {
	path := writeLedger(t, []byte("header\n"))

	lines, err := NewReader(nil).ReadSalesData(path)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReadSalesData_EmptyFile(t *testing.T) {
	path := writeLedger(t, nil)

	lines, err := NewReader(nil).ReadSalesData(path)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReadSalesData_MissingFile(t *testing.T) {
	_, err := NewReader(nil).ReadSalesData(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}
