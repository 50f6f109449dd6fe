// Package optjournal is the core of a personal options trading journal.
//
// It turns a list of option executions (fills) into:
//   - Closed trades: FIFO matching of closing executions against the oldest
//     open lots of the same contract, with prorated commissions.
//   - Open lots: what is left of the opening executions, valued at their trade
//     value or marked to market.
//   - Positions: the net exposure per contract with a weighted average premium.
//   - Statistics: realized and open P&L, win rate.
//   - Reconciliation: scaling of the computed P&L to the totals reported on a
//     broker statement.
//
// All computations are pure functions over immutable values using decimal
// arithmetic. Executions are read from and written to JSONL or CSV; the store
// sub-package persists them per account.
//
// This package serves as the foundational logic for the `oj` command-line tool.
package optjournal
