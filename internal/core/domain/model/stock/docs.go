// Package stock provides the paper inventory aggregate and its append-only ledger.
//
// The package includes:
//   - PaperStock: one paper SKU with its materialized total and reserved counters
//   - Transaction: an immutable ledger entry (in, out, reserve, release, consume, adjust)
//   - Counters: the fold of ledger entries, used both for live appends and for replay
//
// Key business rules:
//   - Ledger entries are the only way counters change
//   - 0 <= reserved <= total after every entry
//   - available = total - reserved is derived, never stored
//   - Quantities are whole sheets; only adjust is signed
//   - Discontinued paper accepts no receipts and no new reservations
package stock
