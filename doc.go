// Package billfold provides the core types and operations for managing
// personal wallets and their transaction history. It is designed to be
// local-first and auditable: the ledger lives in a plain file the user
// owns, and every balance is recomputed from the recorded transactions.
//
// The core functionalities include:
//   - Wallet Management: Creating and maintaining named wallets, each in a
//     single ISO 4217 currency, including fixed-term deposit wallets with
//     an interest rate and maturity.
//   - Transaction Recording: Appending income and expense entries with a
//     category, an optional description and a decimal amount, and linking
//     transfer pairs across wallets so both sides stay consistent.
//   - Reporting Primitives: Filtering by date range, category, direction or
//     text, sorting under pluggable orders, and aggregating totals by
//     category for the summary, percent and activity reports.
//   - Deposit Accounting: Accruing interest over completed months, with or
//     without monthly capitalization, and projecting the value at maturity.
//   - Data Persistence: Encoding and decoding the ledger to and from a
//     human-readable JSONL file that diffs well under version control.
//
// This package serves as the foundational logic for the `bf` command-line
// tool; the renderer, server and sqlstore packages build on it.
package billfold
