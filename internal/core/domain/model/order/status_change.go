package order

import (
	"time"

	"foodcourt/internal/pkg/errs"
)

// StatusChange is one append-only entry of an order's status history.
type StatusChange struct {
	status Status
	actor  string
	notes  string
	at     time.Time
}

// NewStatusChange creates a validated history entry.
func NewStatusChange(status Status, actor, notes string, at time.Time) (StatusChange, error) {
	if err := status.Validate(); err != nil {
		return StatusChange{}, err
	}
	if actor == "" {
		return StatusChange{}, errs.NewValueIsRequiredError("actor")
	}
	if at.IsZero() {
		return StatusChange{}, errs.NewValueIsRequiredError("timestamp")
	}
	return StatusChange{status: status, actor: actor, notes: notes, at: at}, nil
}

// Status returns the status recorded by this entry.
func (s StatusChange) Status() Status { return s.status }

// Actor returns who triggered the change (shop staff id, "customer", "system").
func (s StatusChange) Actor() string { return s.actor }

// Notes returns the optional free-form note attached to the change.
func (s StatusChange) Notes() string { return s.notes }

// At returns when the change was recorded.
func (s StatusChange) At() time.Time { return s.at }
