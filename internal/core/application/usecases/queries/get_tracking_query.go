// Package queries contains read-only operations over committed order state.
// Implements the Query side of the CQRS architecture: denormalized read
// models served from the cache or straight from storage, never mutating
// anything.
package queries

import (
	"errors"

	"foodcourt/internal/pkg/guard"
)

var (
	ErrGetTrackingQueryIsNotConstructed = errors.New(
		"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
	)
	ErrOrderNumberIsRequired = errors.New("order number is required")
)

// GetTrackingQuery retrieves the tracking snapshot of one order family.
// The phone number is optional; when supplied it acts as the access key, and
// tracking an order number with the wrong phone behaves exactly like
// tracking an unknown order number, so the endpoint leaks nothing about
// which numbers exist.
//
// Any family member's order number is accepted; child numbers resolve to
// their family's snapshot.
//
// Example:
//
//	query, err := NewGetTrackingQuery("FC-3FA8B01C2D-02", "+77010001122")
//	if err != nil {
//	    return err
//	}
//
//	snapshot, err := handler.Handle(ctx, query)
type GetTrackingQuery struct {
	orderNumber string
	phone       string

	guard guard.ConstructorGuard
}

// NewGetTrackingQuery creates a query for one order's tracking snapshot.
// Phone may be empty; the handler then skips the access-key check.
func NewGetTrackingQuery(orderNumber, phone string) (GetTrackingQuery, error) {
	if orderNumber == "" {
		return GetTrackingQuery{}, ErrOrderNumberIsRequired
	}

	return GetTrackingQuery{
		orderNumber: orderNumber,
		phone:       phone,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetTrackingQueryIsNotConstructed if validation fails.
func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

// OrderNumber returns the requested order number.
func (q GetTrackingQuery) OrderNumber() string {
	return q.orderNumber
}

// Phone returns the customer phone used as the access key, or the empty
// string when the caller supplied none.
func (q GetTrackingQuery) Phone() string {
	return q.phone
}
