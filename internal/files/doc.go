// Package files provides ledger file access for the sales analytics pipeline.
//
// Reader loads the raw pipe-delimited ledger from disk, skipping the header
// row and blank lines. Files that are not valid UTF-8 are decoded with
// latin-1 and cp1252 fallbacks, so ledgers exported from legacy Windows
// tooling still load.
package files
