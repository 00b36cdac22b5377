// Package dataprocessing turns raw ledger lines into a clean, typed record
// set and derives aggregate sales statistics from it.
//
// # Architecture
//
// The package is organized into three components:
//
// 1. Parser: splits pipe-delimited rows into typed Transactions, silently
// dropping malformed rows
// 2. Validator: applies the business predicates, attaches the derived Amount
// and applies the optional region/amount filters
// 3. Analytics: pure aggregation functions over the validated set
//
// # Data flow
//
//	Raw lines → ParseTransactions → ValidateAndFilter → analytics views
//
// Note the two-tier rejection accounting: parse-time drops are silent and
// never counted, while validation rejections are reported through the invalid
// count. Callers that need both must not conflate them.
//
// All analytics functions are pure: no I/O, no shared state, identical
// results on repeated calls over the same set.
package dataprocessing
