// Package ports defines the contracts between the core and its adapters:
// repositories and the unit of work, the attachment store, the per-order
// lock, the event publisher, the identity provider and the clock.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then publishes the domain
	// events of every tracked aggregate.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository instance bound to the current transaction.
	OrderRepository() OrderRepository

	// ClientRepository returns a ClientRepository instance bound to the current transaction.
	ClientRepository() ClientRepository

	// SettingsRepository returns a SettingsRepository instance bound to the current transaction.
	SettingsRepository() SettingsRepository
}
