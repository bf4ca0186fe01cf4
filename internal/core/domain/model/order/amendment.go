package order

import (
	"time"

	"workshop/internal/core/domain/model/kernel"
)

// FieldChange is one edited attribute in an amendment, rendered as text.
type FieldChange struct {
	Field  string
	Before string
	After  string
}

// Amendment is the audit record of a direct edit to an order's measurements
// or commitments. Amendments are append-only and never change the stage.
type Amendment struct {
	timestamp time.Time
	actor     kernel.Actor
	reason    string
	changes   []FieldChange
}

// RestoreAmendment rebuilds an amendment from persistence.
func RestoreAmendment(timestamp time.Time, actor kernel.Actor, reason string, changes []FieldChange) Amendment {
	return Amendment{
		timestamp: timestamp,
		actor:     actor,
		reason:    reason,
		changes:   append([]FieldChange(nil), changes...),
	}
}

func (a Amendment) Timestamp() time.Time {
	return a.timestamp
}

func (a Amendment) Actor() kernel.Actor {
	return a.actor
}

func (a Amendment) Reason() string {
	return a.reason
}

func (a Amendment) Changes() []FieldChange {
	return append([]FieldChange(nil), a.changes...)
}

// AmendInput carries the fields to edit. Nil fields are left unchanged.
type AmendInput struct {
	TotalDelivered       *float64
	StoneWeight          *float64
	Quality              *float64
	ProfitGold           *float64
	Wastage              *float64
	FinalWeight          *float64
	ExpectedDeliveryDate *kernel.Date
	Notes                *string
	Reason               string
}
