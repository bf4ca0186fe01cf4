package publisher

import (
	"context"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/logger"
)

var _ ports.EventPublisher = LogPublisher{}

// LogPublisher writes events to the application log. It is used when Pub/Sub
// is disabled.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, events ...order.DomainEvent) error {
	for _, e := range events {
		logger.Infow(ctx, "order event",
			"event", e.EventName(),
			"order_id", e.AggregateID().String(),
			"occurred_at", e.OccurredAt(),
		)
	}
	return nil
}
