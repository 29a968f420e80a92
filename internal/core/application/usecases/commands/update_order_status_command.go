package commands

import (
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
	ErrActorIsRequired = errors.New("actor is required")
)

// UpdateOrderStatusCommand represents a staff-initiated status transition on
// a single or zone_shop order. zone_main orders never transition directly;
// their status is recomputed from the children by the handler.
//
// An optional expected current status turns the transition into a
// compare-and-set: if the order has moved on since the caller read it, the
// command fails with a concurrent_modification error instead of applying a
// stale transition.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand(orderID, order.Preparing, "shop-staff-1", "started cooking")
//	if err != nil {
//	    return err
//	}
//	cmd = cmd.WithExpectedStatus(order.Pending)
//
//	result, err := handler.Handle(ctx, cmd)
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	next           order.Status
	actor          string
	notes          string
	expectedStatus *order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to transition one order.
// Validates the order reference, the target status, and that an actor is
// recorded for the status history.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	next order.Status,
	actor, notes string,
) (UpdateOrderStatusCommand, error) {
	command := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setNext(next),
		command.setActor(actor),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	command.notes = notes

	return command, nil
}

// WithExpectedStatus returns a copy of the command carrying a compare-and-set
// precondition on the order's current status.
func (c UpdateOrderStatusCommand) WithExpectedStatus(expected order.Status) UpdateOrderStatusCommand {
	c.expectedStatus = &expected
	return c
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderStatusCommandIsNotConstructed if validation fails.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Next returns the requested target status.
func (c UpdateOrderStatusCommand) Next() order.Status {
	return c.next
}

// Actor returns who requested the transition.
func (c UpdateOrderStatusCommand) Actor() string {
	return c.actor
}

// Notes returns the optional free-form note for the history entry.
func (c UpdateOrderStatusCommand) Notes() string {
	return c.notes
}

// ExpectedStatus returns the compare-and-set precondition, nil when absent.
func (c UpdateOrderStatusCommand) ExpectedStatus() *order.Status {
	return c.expectedStatus
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setNext(next order.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	c.next = next
	return nil
}

func (c *UpdateOrderStatusCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
