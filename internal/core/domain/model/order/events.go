package order

import (
	"time"

	"workshop/internal/core/domain/model/kernel"
)

const (
	EventStageAdvanced = "order.stage_advanced"
	EventDelivered     = "order.delivered"
)

// DomainEvent is raised by the order aggregate and published after the unit
// of work that persisted it commits.
type DomainEvent interface {
	EventName() string
	AggregateID() kernel.UUID
	OccurredAt() time.Time
}

// StageAdvancedEvent is raised for every successful transition, including the
// final one.
type StageAdvancedEvent struct {
	OrderID  kernel.UUID
	ClientID kernel.UUID
	From     Stage
	To       Stage
	Actor    string
	At       time.Time
}

func (e StageAdvancedEvent) EventName() string {
	return EventStageAdvanced
}

func (e StageAdvancedEvent) AggregateID() kernel.UUID {
	return e.OrderID
}

func (e StageAdvancedEvent) OccurredAt() time.Time {
	return e.At
}

// DeliveredEvent is raised when an order reaches Delivered.
type DeliveredEvent struct {
	OrderID        kernel.UUID
	ClientID       kernel.UUID
	ClientName     string
	TotalDelivered float64
	FineGold       float64
	DeliveredBy    string
	At             time.Time
}

func (e DeliveredEvent) EventName() string {
	return EventDelivered
}

func (e DeliveredEvent) AggregateID() kernel.UUID {
	return e.OrderID
}

func (e DeliveredEvent) OccurredAt() time.Time {
	return e.At
}
