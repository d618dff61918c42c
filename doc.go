// Package btctax computes capital-gains tax lots for a bitcoin holder.
//
// Acquisition records (purchases, mined coins, and an inferred legacy
// balance) and disposal records (sales, expenses paid in kind) are matched
// against each other under three accounting conventions: FIFO, LIFO, and
// HIFO. The three conventions share one allocation algorithm and differ only
// in how the lot set is ordered.
//
// The core functionalities include:
//   - Lot Matching: a deterministic allocation of each disposal against the
//     eligible acquisition lots, producing per-match records (quantity
//     allocated, cost basis consumed, gain/loss, holding period, short-term
//     vs. long-term character) and exact aggregate totals.
//   - Policy Comparison: running all three conventions on the same input and
//     selecting the one with the lowest realized gain.
//   - Legacy Reconciliation: synthesizing a zero-cost-basis lot for balance
//     present before records began.
//   - Tax Reporting: Form 8949 rows, Schedule D subtotals, and CSV encoders
//     for everything a tax preparer needs.
//
// All quantity and monetary arithmetic is exact decimal; the aggregate totals
// of a result are always equal, not merely close, to the sums over its
// matches. This package serves as the foundational logic for the `btc-tax`
// command-line tool; CSV ingestion lives in the feeds package and price
// lookup in the prices package.
package btctax
