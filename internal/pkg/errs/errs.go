// Package errs provides standardized error types for the zone ordering application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound) usable with errors.Is
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for error chain support
//   - Code() returning a stable machine-readable code for API consumers,
//     so callers branch on kind rather than on message content
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Stable machine-readable error codes. These are part of the API contract
// and must never change once published.
const (
	CodeValidationFailed       = "validation_failed"
	CodeNotFound               = "not_found"
	CodeZoneUnavailable        = "zone_unavailable"
	CodeItemUnavailable        = "item_unavailable"
	CodeNoEligibleShops        = "no_eligible_shops"
	CodeInvalidTransition      = "invalid_transition"
	CodeConcurrentModification = "concurrent_modification"
	CodePersistenceFailure     = "persistence_failure"
	CodeNotificationFailure    = "notification_failure"
	CodeInternal               = "internal"
)

// Sentinel errors for use with errors.Is.
var (
	ErrObjectNotFound         = errors.New("object not found")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsOutOfRange      = errors.New("value is out of range")
	ErrValueIsRequired        = errors.New("value is required")
	ErrVersionIsInvalid       = errors.New("version is invalid")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrPersistenceFailure     = errors.New("persistence failure")
	ErrNotificationFailure    = errors.New("notification failure")
)

// coder is implemented by every error type in this package and by
// domain-level error types that carry their own code.
type coder interface {
	Code() string
}

// Code extracts the stable machine-readable code from an error chain.
// Returns CodeInternal when no error in the chain carries a code.
func Code(err error) string {
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return CodeInternal
}

// sanitize strips newlines from values interpolated into error messages
// so a single error always renders as a single log line.
func sanitize(v any) string {
	return strings.ReplaceAll(strings.ReplaceAll(fmt.Sprintf("%v", v), "\r", " "), "\n", " ")
}

// ObjectNotFoundError indicates that a requested object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error { return ErrObjectNotFound }

func (e *ObjectNotFoundError) Code() string { return CodeNotFound }

// ValueIsInvalidError indicates that a provided value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error { return ErrValueIsInvalid }

func (e *ValueIsInvalidError) Code() string { return CodeValidationFailed }

// ValueIsOutOfRangeError indicates that a numeric value lies outside its allowed range.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error { return ErrValueIsOutOfRange }

func (e *ValueIsOutOfRangeError) Code() string { return CodeValidationFailed }

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error { return ErrValueIsRequired }

func (e *ValueIsRequiredError) Code() string { return CodeValidationFailed }

// VersionIsInvalidError indicates that an aggregate version does not match expectations.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError without a cause.
func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError wrapping an underlying cause.
func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error { return ErrVersionIsInvalid }

func (e *VersionIsInvalidError) Code() string { return CodeConcurrentModification }

// ConcurrentModificationError indicates that an aggregate was changed by a
// concurrent writer between read and write. The operation is retryable after
// the caller refetches the current state.
type ConcurrentModificationError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewConcurrentModificationError creates a ConcurrentModificationError without a cause.
func NewConcurrentModificationError(paramName string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id}
}

// NewConcurrentModificationErrorWithCause creates a ConcurrentModificationError wrapping an underlying cause.
func NewConcurrentModificationErrorWithCause(paramName string, id any, cause error) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ConcurrentModificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrConcurrentModification, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConcurrentModification, e.ID)
}

func (e *ConcurrentModificationError) Unwrap() error { return ErrConcurrentModification }

func (e *ConcurrentModificationError) Code() string { return CodeConcurrentModification }

// PersistenceError indicates a storage-level failure (transaction abort,
// timeout, connectivity). The operation left no partial state and is retryable.
type PersistenceError struct {
	Op    string
	Cause error
}

// NewPersistenceError creates a PersistenceError wrapping an underlying cause.
func NewPersistenceError(op string, cause error) *PersistenceError {
	return &PersistenceError{Op: op, Cause: cause}
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrPersistenceFailure, e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrPersistenceFailure, e.Op)
}

func (e *PersistenceError) Unwrap() error { return ErrPersistenceFailure }

func (e *PersistenceError) Code() string { return CodePersistenceFailure }

// NotificationError indicates a best-effort publish failure. It is only ever
// logged; it must never be surfaced to callers of order mutations.
type NotificationError struct {
	Channel string
	Cause   error
}

// NewNotificationError creates a NotificationError wrapping an underlying cause.
func NewNotificationError(channel string, cause error) *NotificationError {
	return &NotificationError{Channel: channel, Cause: cause}
}

func (e *NotificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrNotificationFailure, e.Channel, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrNotificationFailure, e.Channel)
}

func (e *NotificationError) Unwrap() error { return ErrNotificationFailure }

func (e *NotificationError) Code() string { return CodeNotificationFailure }

// BusinessRuleError is a reusable error for domain rule violations that need
// their own stable code (for example zone_unavailable). Handlers declare
// package-level instances and wrap them with fmt.Errorf("%w: ...") to attach
// request context without losing errors.Is/As matching.
type BusinessRuleError struct {
	RuleCode string
	Message  string
}

// NewBusinessRuleError creates a BusinessRuleError with a stable code and message.
func NewBusinessRuleError(code, message string) *BusinessRuleError {
	return &BusinessRuleError{RuleCode: code, Message: message}
}

func (e *BusinessRuleError) Error() string { return e.Message }

func (e *BusinessRuleError) Code() string { return e.RuleCode }
