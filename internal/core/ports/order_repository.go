package ports

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. It fails with a
	// VersionIsInvalid error when the stored revision moved since the order
	// was loaded.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its full history, proof and amendments.
	// Returns an ObjectNotFound error for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
