// Package report renders the fixed-layout sales analytics text document:
// header banner, overall summary, region performance, top products and
// customers, daily trend, product performance analysis and the catalog
// enrichment summary, always in that order.
package report
