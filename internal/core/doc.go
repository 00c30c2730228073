// Package core classifies the columns of a tabular dataset by whether they
// likely hold personal data that needs anonymization.
//
// The package has no HTTP dependencies. It can be driven by the web layer,
// a CLI, or tests.
//
// # Classification
//
// A [Pipeline] runs an ordered battery of column checks. Each column is
// claimed by at most one check; a claimed column is not offered to later
// checks. Execution order is:
//
//  1. [NullCheck]: every value missing ("Not enough data")
//  2. [RegexPIICheck]: MSISDN, CLI, Email, AFM patterns in that order ("Yes")
//  3. [LowCardinalityCheck]: few distinct values ("Probably No")
//  4. [DateCheck]: date-like values, skipping *BIRTH* columns ("Probably No")
//  5. system-ID shape via [PatternCheck] ("Probably No")
//  6. Greek script via [PatternCheck] ("Probably Yes")
//
// Columns nobody claims default to "Probably Yes".
//
// Reports are assembled in [DisplayOrder], which is not the execution order.
// [Summarize] tallies a report per label.
//
// # Input
//
// [ReadDataset] turns an uploaded CSV, TSV or xlsx file into a [Dataset].
// Text uploads pass through [WrapUpload] which enforces the size limit,
// strips a UTF-8 BOM and replaces invalid UTF-8.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with [MapError]:
//
//   - FILE001-FILE005: upload problems (size, format, empty)
//   - RUN001-RUN003: run slot, cancellation and timeout problems
//   - CFG001: invalid pattern catalog
//   - RATE001: rate limiting
package core
