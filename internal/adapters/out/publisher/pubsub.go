package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/logger"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

var _ ports.EventPublisher = (*PubSubPublisher)(nil)

type PubSubPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// NewPubSubPublisher connects to projectID and publishes to topicID. The
// topic is created when it does not exist.
func NewPubSubPublisher(ctx context.Context, projectID, topicID string, opts ...option.ClientOption) (*PubSubPublisher, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, errs.NewValueIsRequiredError("projectID")
	}
	if strings.TrimSpace(topicID) == "" {
		return nil, errs.NewValueIsRequiredError("topicID")
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	topic := client.Topic(topicID)
	ok, err := topic.Exists(ctx)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("check topic %q: %w", topicID, err)
	}
	if !ok {
		if topic, err = client.CreateTopic(ctx, topicID); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("create topic %q: %w", topicID, err)
		}
	}

	return &PubSubPublisher{client: client, topic: topic}, nil
}

// Publish sends every event and waits for the server ids. Failed events do
// not stop the others; their errors are joined.
func (p *PubSubPublisher) Publish(ctx context.Context, events ...order.DomainEvent) error {
	results := make([]*pubsub.PublishResult, 0, len(events))
	var errList []error
	for _, e := range events {
		data, attrs, err := Encode(e)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		results = append(results, p.topic.Publish(ctx, &pubsub.Message{Data: data, Attributes: attrs}))
	}

	for _, r := range results {
		id, err := r.Get(ctx)
		if err != nil {
			errList = append(errList, fmt.Errorf("publish: %w", err))
			continue
		}
		logger.Debugw(ctx, "event published", "message_id", id)
	}
	return errors.Join(errList...)
}

// Close flushes pending messages and closes the client.
func (p *PubSubPublisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
