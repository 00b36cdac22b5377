// Package exporter writes the pipeline's flat output artifacts.
//
// This package contains three main components:
//
// DelimitedWriter: core pipe-delimited writing with directory creation and
// guaranteed flush/close semantics.
//
// EnrichedExporter: persists the catalog-enriched transaction set under the
// fixed 12-column header.
//
// WorkbookExporter: optional Excel workbook with one sheet per analytics view.
//
// Money and number rendering for all exports lives in format.go.
package exporter
