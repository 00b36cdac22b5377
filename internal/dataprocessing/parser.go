package dataprocessing

import (
	"log/slog"
	"strconv"
	"strings"

	"salescli/pkg/contracts/domain"
)

// ParseTransactions turns raw pipe-delimited ledger lines into typed
// Transactions. Rows with the wrong field count or a quantity/price that does
// not parse are dropped silently; they never reach validation and are not
// part of the invalid count reported there. Input order is preserved and no
// deduplication takes place.
func ParseTransactions(lines []string) []domain.Transaction {
	transactions := make([]domain.Transaction, 0, len(lines))
	dropped := 0

	for _, line := range lines {
		tx, ok := parseLine(line)
		if !ok {
			dropped++
			continue
		}
		transactions = append(transactions, tx)
	}

	if dropped > 0 {
		slog.Debug("dropped malformed ledger rows",
			slog.Int("dropped", dropped),
			slog.Int("parsed", len(transactions)))
	}

	return transactions
}

// parseLine parses a single ledger row. The second return value is false when
// the row must be dropped.
func parseLine(line string) (domain.Transaction, bool) {
	parts := strings.Split(line, "|")
	if len(parts) != domain.LedgerFieldCount {
		return domain.Transaction{}, false
	}

	// Embedded commas are a known artifact of the source data, both in the
	// product name and in formatted numbers.
	quantity, err := strconv.Atoi(stripCommas(parts[4]))
	if err != nil {
		return domain.Transaction{}, false
	}
	unitPrice, err := strconv.ParseFloat(stripCommas(parts[5]), 64)
	if err != nil {
		return domain.Transaction{}, false
	}

	return domain.Transaction{
		TransactionID: strings.TrimSpace(parts[0]),
		Date:          strings.TrimSpace(parts[1]),
		ProductID:     strings.TrimSpace(parts[2]),
		ProductName:   stripCommas(parts[3]),
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    strings.TrimSpace(parts[6]),
		Region:        strings.TrimSpace(parts[7]),
	}, true
}

// stripCommas removes embedded commas and surrounding whitespace.
func stripCommas(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
}
