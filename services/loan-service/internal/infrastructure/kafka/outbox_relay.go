package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/loanflow/loanflow/pkg/events"
	pkgkafka "github.com/loanflow/loanflow/pkg/kafka"
)

const (
	defaultRelayInterval  = time.Second
	defaultRelayBatchSize = 100
)

// OutboxRelay moves committed outbox rows onto the events topic. Delivery is
// at-least-once: a crash between publish and mark republishes the batch.
type OutboxRelay struct {
	repo      events.OutboxRepository
	producer  Producer
	topic     string
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

// NewOutboxRelay creates a relay. Non-positive interval or batchSize fall back
// to one second and 100 rows.
func NewOutboxRelay(
	repo events.OutboxRepository,
	producer Producer,
	topic string,
	interval time.Duration,
	batchSize int,
	logger *slog.Logger,
) *OutboxRelay {
	if interval <= 0 {
		interval = defaultRelayInterval
	}
	if batchSize <= 0 {
		batchSize = defaultRelayBatchSize
	}
	return &OutboxRelay{
		repo:      repo,
		producer:  producer,
		topic:     topic,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run polls until ctx is cancelled. Full batches are drained without waiting
// for the next tick.
func (r *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.InfoContext(ctx, "outbox relay started", "topic", r.topic, "interval", r.interval)
	for {
		for {
			n, err := r.RelayOnce(ctx)
			if err != nil {
				if ctx.Err() == nil {
					r.logger.WarnContext(ctx, "outbox relay failed", "error", err)
				}
				break
			}
			if n < r.batchSize {
				break
			}
		}

		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
		}
	}
}

// RelayOnce publishes one batch and marks it published. It returns the
// number of rows relayed.
func (r *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	pending, err := r.repo.FetchUnpublished(ctx, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("fetch outbox: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	messages := make([]pkgkafka.Message, 0, len(pending))
	ids := make([]string, 0, len(pending))
	for _, e := range pending {
		messages = append(messages, eventMessage(e.AggregateID, e.EventType, e.ID, e.AggregateType, e.Payload))
		ids = append(ids, e.ID)
	}

	if err := r.producer.Publish(ctx, r.topic, messages...); err != nil {
		return 0, fmt.Errorf("publish outbox batch to %s: %w", r.topic, err)
	}
	if err := r.repo.MarkPublished(ctx, ids); err != nil {
		return 0, fmt.Errorf("mark outbox published: %w", err)
	}

	r.logger.DebugContext(ctx, "outbox batch relayed", "count", len(pending), "topic", r.topic)
	return len(pending), nil
}
