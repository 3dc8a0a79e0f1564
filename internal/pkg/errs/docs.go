// Package errs provides standardized error types for the print-shop fulfillment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used by the domain model, the application use cases, and the adapters.
//
// The package includes two families of errors:
//   - Validation errors raised while constructing domain objects:
//     ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError, ObjectNotFoundError
//   - Workflow and ledger errors reported to callers of the core operations:
//     InvalidTransitionError, UnauthorizedError, UserNotInDepartmentError, InsufficientStockError,
//     InvalidQuantityError, OverReleaseError, DoubleConsumeError, StaleStateError, ConsistencyError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrInsufficientStock) usable with errors.Is
//   - A struct type with fields carrying the entity id, the attempted operation and the state involved
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// Callers render messages from the struct fields (errors.As) and classify with the sentinels.
package errs
