// Package guard provides the constructor guard embedded by domain objects, commands and queries.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor. The zero value is "not constructed",
// so structs created with a literal fail Validate.
//
//	type ReserveMaterialCommand struct {
//	    sheets int
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c ReserveMaterialCommand) Validate() error {
//	    return c.guard.Validate(ErrReserveMaterialCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
