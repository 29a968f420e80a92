package commands

import (
	"errors"
	"time"

	"foodcourt/internal/pkg/guard"
)

var (
	ErrCleanupOutboxCommandIsNotConstructed = errors.New(
		"CleanupOutboxCommand must be created via NewCleanupOutboxCommand constructor",
	)
	ErrRetentionIsInvalid = errors.New("retention must be greater than 0")
)

// CleanupOutboxCommand triggers removal of dispatched events older than the
// retention window. Pending events are never removed, no matter their age.
type CleanupOutboxCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

// NewCleanupOutboxCommand creates a command to purge dispatched events older
// than retention.
func NewCleanupOutboxCommand(retention time.Duration) (CleanupOutboxCommand, error) {
	command := CleanupOutboxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if retention <= 0 {
		return CleanupOutboxCommand{}, ErrRetentionIsInvalid
	}
	command.retention = retention

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCleanupOutboxCommandIsNotConstructed if validation fails.
func (c *CleanupOutboxCommand) Validate() error {
	return c.guard.Validate(ErrCleanupOutboxCommandIsNotConstructed)
}

// Retention returns how long dispatched events are kept.
func (c CleanupOutboxCommand) Retention() time.Duration {
	return c.retention
}
