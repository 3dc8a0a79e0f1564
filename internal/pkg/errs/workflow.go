package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUserNotInDepartment = errors.New("user not in department")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrOverRelease         = errors.New("over release")
	ErrDoubleConsume       = errors.New("double consume")
	ErrStaleState          = errors.New("stale state")
	ErrConsistency         = errors.New("consistency error")
)

// InvalidTransitionError reports a stage, substage or status change that is not
// reachable from the current state of the entity.
type InvalidTransitionError struct {
	Entity    string
	ID        string
	Operation string
	From      string
	To        string
	Reason    string
}

func NewInvalidTransitionError(entity, id, operation, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, ID: id, Operation: operation, From: from, To: to}
}

// WithReason attaches a human readable explanation and returns the same error.
func (e *InvalidTransitionError) WithReason(reason string) *InvalidTransitionError {
	e.Reason = reason
	return e
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s %s cannot %s from %q to %q", ErrInvalidTransition, e.Entity, e.ID, e.Operation, e.From, e.To)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// UnauthorizedError reports an actor whose role cannot act on a department.
type UnauthorizedError struct {
	ActorID    string
	Role       string
	Department string
	Operation  string
}

func NewUnauthorizedError(actorID, role, department, operation string) *UnauthorizedError {
	return &UnauthorizedError{ActorID: actorID, Role: role, Department: department, Operation: operation}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: actor %s with role %q cannot %s in department %q",
		ErrUnauthorized, e.ActorID, e.Role, e.Operation, e.Department)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

type UserNotInDepartmentError struct {
	UserID     string
	Department string
	Actual     string
	Cause      error
}

func NewUserNotInDepartmentError(userID, department, actual string) *UserNotInDepartmentError {
	return &UserNotInDepartmentError{UserID: userID, Department: department, Actual: actual}
}

func NewUserNotInDepartmentErrorWithCause(userID, department string, cause error) *UserNotInDepartmentError {
	return &UserNotInDepartmentError{UserID: userID, Department: department, Cause: cause}
}

func (e *UserNotInDepartmentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: user %s, required %q (cause: %v)", ErrUserNotInDepartment, e.UserID, e.Department, e.Cause)
	}
	return fmt.Sprintf("%s: user %s belongs to %q, required %q", ErrUserNotInDepartment, e.UserID, e.Actual, e.Department)
}

func (e *UserNotInDepartmentError) Unwrap() error {
	return ErrUserNotInDepartment
}

// InsufficientStockError reports a reservation or issue larger than what the paper has.
type InsufficientStockError struct {
	PaperID   string
	Operation string
	Requested int
	Available int
}

func NewInsufficientStockError(paperID, operation string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{PaperID: paperID, Operation: operation, Requested: requested, Available: available}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: paper %s cannot %s %d sheets, %d available",
		ErrInsufficientStock, e.PaperID, e.Operation, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

type InvalidQuantityError struct {
	ParamName string
	Value     any
	Reason    string
}

func NewInvalidQuantityError(paramName string, value any, reason string) *InvalidQuantityError {
	return &InvalidQuantityError{ParamName: paramName, Value: value, Reason: reason}
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("%s: %s is %s, %s", ErrInvalidQuantity, e.ParamName, sanitize(e.Value), e.Reason)
}

func (e *InvalidQuantityError) Unwrap() error {
	return ErrInvalidQuantity
}

// OverReleaseError reports a release of an allocation or sheets that are not reserved.
type OverReleaseError struct {
	ID        string
	Status    string
	Requested int
	Reserved  int
}

func NewOverReleaseError(id, status string) *OverReleaseError {
	return &OverReleaseError{ID: id, Status: status}
}

func NewOverReleaseSheetsError(id string, requested, reserved int) *OverReleaseError {
	return &OverReleaseError{ID: id, Requested: requested, Reserved: reserved}
}

func (e *OverReleaseError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s: allocation %s is %s, not reserved", ErrOverRelease, e.ID, e.Status)
	}
	return fmt.Sprintf("%s: %s cannot release %d sheets, %d reserved", ErrOverRelease, e.ID, e.Requested, e.Reserved)
}

func (e *OverReleaseError) Unwrap() error {
	return ErrOverRelease
}

// DoubleConsumeError reports a consume of an allocation or sheets that are not reserved.
type DoubleConsumeError struct {
	ID        string
	Status    string
	Requested int
	Reserved  int
}

func NewDoubleConsumeError(id, status string) *DoubleConsumeError {
	return &DoubleConsumeError{ID: id, Status: status}
}

func NewDoubleConsumeSheetsError(id string, requested, reserved int) *DoubleConsumeError {
	return &DoubleConsumeError{ID: id, Requested: requested, Reserved: reserved}
}

func (e *DoubleConsumeError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s: allocation %s is %s, not reserved", ErrDoubleConsume, e.ID, e.Status)
	}
	return fmt.Sprintf("%s: %s cannot consume %d sheets, %d reserved", ErrDoubleConsume, e.ID, e.Requested, e.Reserved)
}

func (e *DoubleConsumeError) Unwrap() error {
	return ErrDoubleConsume
}

// StaleStateError reports a lost optimistic concurrency check. The caller re-reads and retries.
type StaleStateError struct {
	Entity          string
	ID              string
	ExpectedVersion any
}

func NewStaleStateError(entity, id string, expectedVersion any) *StaleStateError {
	return &StaleStateError{Entity: entity, ID: id, ExpectedVersion: expectedVersion}
}

func (e *StaleStateError) Error() string {
	return fmt.Sprintf("%s: %s %s changed since version %v was read", ErrStaleState, e.Entity, e.ID, e.ExpectedVersion)
}

func (e *StaleStateError) Unwrap() error {
	return ErrStaleState
}

// ConsistencyError is fatal: a compensating action failed and a dependent row no longer
// agrees with the ledger. It needs operator intervention.
type ConsistencyError struct {
	Operation    string
	ID           string
	Cause        error
	Compensation error
}

func NewConsistencyError(operation, id string, cause, compensation error) *ConsistencyError {
	return &ConsistencyError{Operation: operation, ID: id, Cause: cause, Compensation: compensation}
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s: %s %s left inconsistent (cause: %v, compensation: %v)",
		ErrConsistency, e.Operation, e.ID, e.Cause, e.Compensation)
}

func (e *ConsistencyError) Unwrap() []error {
	return []error{ErrConsistency, e.Cause}
}
