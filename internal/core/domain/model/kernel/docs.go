// Package kernel provides the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifier of items, orders, paper stock, allocations, ledger entries and events
//   - Actor: the caller identity supplied per operation by the authentication collaborator
//   - Department: the closed set of departments an item can be assigned to
//   - Sheets: whole-sheet quantity parsing for paper stock operations
//
// Values are immutable and safe for concurrent use.
package kernel
