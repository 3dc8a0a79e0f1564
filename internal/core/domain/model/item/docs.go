// Package item provides the OrderItem aggregate: a unit of production work moving
// through the print shop's departments.
//
// The package includes:
//   - OrderItem: the aggregate root holding stage, production substeps, assignment and flags
//   - Stage: the department phase state machine with its allowed-transition table
//   - Substage and SubstageStatus: the ordered production steps and their progress
//
// Key business rules:
//   - Items are created in sales and never deleted; completed is terminal
//   - Forward moves skip at most one stage, except the sales -> production fast path for
//     items that need no design
//   - Outsource is reachable from design, prepress and production and returns only to the
//     stage that sent the item
//   - A substage exists only while the item is in production
//   - is_ready_for_production is true exactly when every step of the production sequence
//     is completed
//   - The repository saves conditionally on the version read and bumps it on success
package item
