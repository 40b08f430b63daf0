// Package guard provides ConstructorGuard, a marker that lets a type detect
// whether it was built by its constructor or left as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in drafts and requests whose constructors
// validate input. The zero value fails Validate.
//
// Example:
//
//	type AssignRequest struct {
//	    personID string
//	    guard    guard.ConstructorGuard
//	}
//
//	func (r AssignRequest) Validate() error {
//	    return r.guard.Validate(ErrAssignRequestIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
