package ports

import (
	"context"

	"workshop/internal/core/domain/model/client"
	"workshop/internal/core/domain/model/kernel"
)

// ClientRepository defines the persistence contract for client aggregates.
// Deleting a client leaves its orders in place.
type ClientRepository interface {
	Add(ctx context.Context, aggregate *client.Client) error
	Update(ctx context.Context, aggregate *client.Client) error

	// Get returns an ObjectNotFound error for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*client.Client, error)

	// Delete returns an ObjectNotFound error for unknown ids.
	Delete(ctx context.Context, id kernel.UUID) error
}
