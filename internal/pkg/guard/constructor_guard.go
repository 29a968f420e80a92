// Package guard implements a defensive construction pattern for value objects,
// entities, commands, and queries. Embedding a ConstructorGuard in a struct
// makes it possible to detect whether the struct was built through its
// designated constructor or left as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is
// passed as the validation error, so validation always fails with a
// meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard tracks whether its enclosing object was created through a
// constructor. The zero value fails validation; NewConstructorGuard passes.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it inside the object's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guarded object was built through its
// constructor, otherwise the supplied validationError (or
// ErrDefaultConstructorGuard when validationError is nil).
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
