package commands

import (
	"errors"

	"foodcourt/internal/pkg/guard"
)

var (
	ErrDispatchOutboxCommandIsNotConstructed = errors.New(
		"DispatchOutboxCommand must be created via NewDispatchOutboxCommand constructor",
	)
	ErrBatchSizeIsInvalid = errors.New("batch size must be greater than 0")
)

// DispatchOutboxCommand triggers one drain cycle of the notification outbox.
// This batch operation publishes pending events to their channels and records
// the outcome per event.
//
// Example:
//
//	cmd, _ := NewDispatchOutboxCommand(100)
//	handler := NewDispatchOutboxCommandHandler(uowFactory, publisher, logger)
//
//	// Run periodically from the dispatch job
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("outbox drain failed: %v", err)
//	}
type DispatchOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

// NewDispatchOutboxCommand creates a command to drain up to batchSize pending
// events in one cycle.
func NewDispatchOutboxCommand(batchSize int) (DispatchOutboxCommand, error) {
	command := DispatchOutboxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if batchSize <= 0 {
		return DispatchOutboxCommand{}, ErrBatchSizeIsInvalid
	}
	command.batchSize = batchSize

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchOutboxCommandIsNotConstructed if validation fails.
func (c *DispatchOutboxCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOutboxCommandIsNotConstructed)
}

// BatchSize returns the maximum number of events drained per cycle.
func (c DispatchOutboxCommand) BatchSize() int {
	return c.batchSize
}
