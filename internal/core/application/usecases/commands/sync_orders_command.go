package commands

import (
	"errors"
	"time"

	"production/internal/pkg/guard"
)

var ErrSyncOrdersCommandIsNotConstructed = errors.New(
	"SyncOrdersCommand must be created via NewSyncOrdersCommand constructor",
)

// SyncOrdersCommand represents a request to pull orders from the external
// order-management system and merge them into the local store.
type SyncOrdersCommand struct {
	since time.Time

	guard guard.ConstructorGuard
}

// NewSyncOrdersCommand creates a command to synchronize orders changed
// since the given moment. A zero time requests the full backlog.
func NewSyncOrdersCommand(since time.Time) SyncOrdersCommand {
	return SyncOrdersCommand{
		since: since,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSyncOrdersCommandIsNotConstructed if validation fails.
func (c SyncOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSyncOrdersCommandIsNotConstructed)
}

// Since returns the lower bound of the pull window.
func (c SyncOrdersCommand) Since() time.Time {
	return c.since
}
