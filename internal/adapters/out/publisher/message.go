// Package publisher delivers committed order events to Cloud Pub/Sub or to
// the application log.
package publisher

import (
	"encoding/json"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/order"
)

// Message is the JSON body of a published event.
type Message struct {
	Event       string    `json:"event"`
	OrderID     string    `json:"orderId"`
	ClientID    string    `json:"clientId"`
	OccurredAt  time.Time `json:"occurredAt"`
	From        string    `json:"from,omitempty"`
	To          string    `json:"to,omitempty"`
	Actor       string    `json:"actor,omitempty"`
	ClientName  string    `json:"clientName,omitempty"`
	TotalGross  float64   `json:"totalDelivered,omitempty"`
	FineGold    float64   `json:"fineGold,omitempty"`
	DeliveredBy string    `json:"deliveredBy,omitempty"`
}

func toMessage(e order.DomainEvent) (Message, error) {
	switch ev := e.(type) {
	case order.StageAdvancedEvent:
		return Message{
			Event:      ev.EventName(),
			OrderID:    ev.OrderID.String(),
			ClientID:   ev.ClientID.String(),
			OccurredAt: ev.At.UTC(),
			From:       ev.From.String(),
			To:         ev.To.String(),
			Actor:      ev.Actor,
		}, nil
	case order.DeliveredEvent:
		return Message{
			Event:       ev.EventName(),
			OrderID:     ev.OrderID.String(),
			ClientID:    ev.ClientID.String(),
			OccurredAt:  ev.At.UTC(),
			ClientName:  ev.ClientName,
			TotalGross:  ev.TotalDelivered,
			FineGold:    ev.FineGold,
			DeliveredBy: ev.DeliveredBy,
		}, nil
	default:
		return Message{}, fmt.Errorf("unsupported event %T", e)
	}
}

// Encode renders the event body and the attributes subscribers filter on.
func Encode(e order.DomainEvent) ([]byte, map[string]string, error) {
	msg, err := toMessage(e)
	if err != nil {
		return nil, nil, err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal %s: %w", msg.Event, err)
	}
	return data, map[string]string{"event": msg.Event, "orderId": msg.OrderID}, nil
}
