package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// OutboxEntry represents a domain event stored in the outbox table.
type OutboxEntry struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// NewOutboxEntry creates an OutboxEntry from a DomainEvent.
// The payload is produced by JSON-marshalling the event itself.
func NewOutboxEntry(event DomainEvent) (OutboxEntry, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return OutboxEntry{}, fmt.Errorf("marshal %s event: %w", event.EventType(), err)
	}
	return OutboxEntry{
		ID:            event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		EventType:     event.EventType(),
		Payload:       payload,
		CreatedAt:     event.OccurredAt(),
	}, nil
}

// NewOutboxEntries converts a batch of events, failing on the first one that
// cannot be serialised.
func NewOutboxEntries(events ...DomainEvent) ([]OutboxEntry, error) {
	entries := make([]OutboxEntry, 0, len(events))
	for _, evt := range events {
		entry, err := NewOutboxEntry(evt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// OutboxRepository is the port for outbox persistence.
type OutboxRepository interface {
	Store(ctx context.Context, entries []OutboxEntry) error
	// FetchUnpublished returns up to batchSize unpublished entries, oldest first.
	FetchUnpublished(ctx context.Context, batchSize int) ([]OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []string) error
}
