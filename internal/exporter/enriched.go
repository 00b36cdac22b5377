package exporter

import (
	"context"
	"log/slog"
	"strconv"

	"salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// EnrichedExporter persists the enriched transaction set to the pipe-delimited
// export file.
type EnrichedExporter struct {
	writer *DelimitedWriter
	logger *slog.Logger
}

// NewEnrichedExporter creates an enriched-data exporter
func NewEnrichedExporter(logger *slog.Logger) *EnrichedExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &EnrichedExporter{
		writer: NewPipeWriter(),
		logger: logger,
	}
}

// Export writes one row per enriched transaction, in input order, under the
// 12-column enriched header. Unmatched API fields render as empty strings and
// the match flag renders as literal boolean text.
func (e *EnrichedExporter) Export(ctx context.Context, path string, enriched []domain.EnrichedTransaction) error {
	records := make([][]string, 0, len(enriched))
	for _, tx := range enriched {
		records = append(records, enrichedRow(tx))
	}

	if err := e.writer.WriteFile(path, WriteOptions{
		Headers: domain.EnrichedHeader,
		Records: records,
	}); err != nil {
		return errors.NewStorageError("failed to save enriched data", err).
			WithContext("path", path)
	}

	e.logger.InfoContext(ctx, "enriched data saved",
		slog.String("path", path),
		slog.Int("record_count", len(enriched)))
	return nil
}

// enrichedRow renders one transaction as export columns in wire order.
func enrichedRow(tx domain.EnrichedTransaction) []string {
	category, brand, rating := "", "", ""
	if tx.APICategory != nil {
		category = *tx.APICategory
	}
	if tx.APIBrand != nil {
		brand = *tx.APIBrand
	}
	if tx.APIRating != nil {
		rating = FormatFloat(*tx.APIRating)
	}

	return []string{
		tx.TransactionID,
		tx.Date,
		tx.ProductID,
		tx.ProductName,
		strconv.Itoa(tx.Quantity),
		FormatFloat(tx.UnitPrice),
		tx.CustomerID,
		tx.Region,
		category,
		brand,
		rating,
		FormatBool(tx.APIMatch),
	}
}
