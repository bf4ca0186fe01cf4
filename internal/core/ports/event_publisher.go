package ports

import (
	"context"

	"workshop/internal/core/domain/model/order"
)

// EventPublisher delivers committed domain events to subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.DomainEvent) error
}
