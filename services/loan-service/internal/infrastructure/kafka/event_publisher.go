package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	pkgkafka "github.com/loanflow/loanflow/pkg/kafka"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/event"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/port"
)

// TopicLoanEvents carries every loan-service domain event.
const TopicLoanEvents = "loanflow.loan.events"

var (
	_ port.EventPublisher = (*EventPublisher)(nil)
	_ port.EventPublisher = NopPublisher{}
)

// Producer is the subset of pkg/kafka.Producer the publisher needs.
type Producer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// EventPublisher implements port.EventPublisher by writing events to Kafka.
type EventPublisher struct {
	producer Producer
	topic    string
	logger   *slog.Logger
}

// NewEventPublisher creates a publisher targeting the given producer and topic.
func NewEventPublisher(producer Producer, topic string, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish serialises and sends domain events, keyed by aggregate ID.
func (p *EventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"topic", p.topic,
			"payload_size", len(payload),
		)

		messages = append(messages,
			eventMessage(evt.AggregateID(), evt.EventType(), evt.EventID(), evt.AggregateType(), payload))
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish events to topic %s: %w", p.topic, err)
	}
	return nil
}

// eventMessage keys by aggregate so one aggregate's events stay ordered.
func eventMessage(aggregateID, eventType, eventID, aggregateType string, payload []byte) pkgkafka.Message {
	return pkgkafka.Message{
		Key:   []byte(aggregateID),
		Value: payload,
		Headers: map[string]string{
			"event_type":     eventType,
			"event_id":       eventID,
			"aggregate_type": aggregateType,
		},
	}
}

// NopPublisher discards events. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...event.DomainEvent) error { return nil }
