// Package enrichment joins validated transactions with metadata from the
// remote product catalog.
//
// Enrichment is always per-record and recoverable: an unreachable catalog, a
// malformed product ID or an unknown product key leave the record unmatched
// (APIMatch false, nil API fields) without failing the run.
package enrichment
