package order

import (
	"errors"
	"fmt"
	"strings"

	"foodcourt/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for rejected status transitions.
// Use errors.Is against it; the concrete *InvalidTransitionError carries the
// current status and the allowed next statuses.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order. It implements a state
// machine with an explicit transition table so orders follow the fulfillment
// workflow:
//
//	pending ──> preparing ──> ready ──> completed
//	   │            │           │
//	   └────────────┴───────────┴─────> cancelled
//
// completed and cancelled are terminal; documents in those states are never
// rewritten.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every order in the family.
	Pending

	// Preparing indicates the shop has accepted the order and started work.
	Preparing

	// Ready indicates the order is ready for pickup or serving.
	Ready

	// Completed indicates the order was handed over. Terminal.
	Completed

	// Cancelled indicates the order was cancelled. Terminal.
	Cancelled
)

// getStatusStrings returns the wire/storage names for all statuses.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Preparing: "preparing",
		Ready:     "ready",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// transitionTable returns the allowed next statuses per current status.
// Requested transitions absent from this table are rejected; in particular a
// repeat of the current status is not an allowed transition.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Preparing, Cancelled},
		Preparing: {Ready, Cancelled},
		Ready:     {Completed, Cancelled},
		Completed: {},
		Cancelled: {},
	}
}

// StatusFromString parses a wire/storage status name.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := transitionTable()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase name of the status. Implements fmt.Stringer
// and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// AllowedNext returns the statuses reachable from s in one transition.
// The slice is a copy and safe to retain.
func (s Status) AllowedNext() []Status {
	next := transitionTable()[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether the transition s -> next is in the table.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitionTable()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs the transition s -> next.
//
// Returns the new status on success, or an *InvalidTransitionError carrying
// the current status and the allowed next statuses. The receiver is never
// mutated; callers decide whether to apply the result.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(next) {
		return Unknown, NewInvalidTransitionError(s, next)
	}
	return next, nil
}

// AggregateChildren computes the status of a zone_main order as a pure
// function of the committed statuses of all its children:
//
//   - cancelled iff every child is cancelled
//   - else completed iff every child is terminal and at least one completed
//   - else ready iff every child is in {ready, completed, cancelled} and at
//     least one is ready
//   - else preparing iff at least one child is preparing or ready
//   - else pending
//
// The function is total over valid inputs and deliberately decoupled from
// persistence so any interleaving of child transitions yields a parent
// status consistent with the committed sibling set.
func AggregateChildren(children []Status) (Status, error) {
	if len(children) == 0 {
		return Unknown, errs.NewValueIsRequiredError("children statuses")
	}

	var preparing, ready, completed, cancelled, terminal int
	for _, s := range children {
		if err := s.Validate(); err != nil {
			return Unknown, err
		}
		switch s {
		case Preparing:
			preparing++
		case Ready:
			ready++
		case Completed:
			completed++
		case Cancelled:
			cancelled++
		}
		if s.IsTerminal() {
			terminal++
		}
	}

	total := len(children)
	switch {
	case cancelled == total:
		return Cancelled, nil
	case terminal == total && completed > 0:
		return Completed, nil
	case ready+terminal == total && ready > 0:
		return Ready, nil
	case preparing+ready > 0 && terminal < total:
		return Preparing, nil
	default:
		return Pending, nil
	}
}

// InvalidTransitionError reports a status transition absent from the
// transition table. The stored document is left untouched when it occurs.
type InvalidTransitionError struct {
	From      Status
	Requested Status
	Allowed   []Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the
// transition from -> requested, capturing the allowed next statuses of from.
func NewInvalidTransitionError(from, requested Status) *InvalidTransitionError {
	return &InvalidTransitionError{
		From:      from,
		Requested: requested,
		Allowed:   from.AllowedNext(),
	}
}

func (e *InvalidTransitionError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		allowed[i] = s.String()
	}
	if len(allowed) == 0 {
		return fmt.Sprintf("%s: %s -> %s (%s is terminal)", ErrInvalidTransition, e.From, e.Requested, e.From)
	}
	return fmt.Sprintf("%s: %s -> %s (allowed: %s)", ErrInvalidTransition, e.From, e.Requested, strings.Join(allowed, ", "))
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// Code returns the stable machine-readable code for API consumers.
func (e *InvalidTransitionError) Code() string { return errs.CodeInvalidTransition }
