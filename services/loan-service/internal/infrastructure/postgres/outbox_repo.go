package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/loanflow/loanflow/pkg/events"
	pgpkg "github.com/loanflow/loanflow/pkg/postgres"
)

var _ events.OutboxRepository = (*OutboxRepo)(nil)

const (
	insertOutboxSQL = `
		INSERT INTO outbox (id, aggregate_id, aggregate_type, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	fetchUnpublishedSQL = `
		SELECT id, aggregate_id, aggregate_type, event_type, payload, created_at
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY seq
		LIMIT $1
	`
	markPublishedSQL = `
		UPDATE outbox SET published_at = $2
		WHERE id = ANY($1::uuid[]) AND published_at IS NULL
	`
)

// OutboxRepo stores domain events next to the audit rows that produced them.
type OutboxRepo struct {
	db  pgpkg.Querier
	now func() time.Time
}

// NewOutboxRepo creates an outbox bound to a pool or an open transaction.
func NewOutboxRepo(db pgpkg.Querier) *OutboxRepo {
	return &OutboxRepo{db: db, now: time.Now}
}

func (r *OutboxRepo) Store(ctx context.Context, entries []events.OutboxEntry) error {
	for _, e := range entries {
		if _, err := r.db.Exec(ctx, insertOutboxSQL,
			e.ID, e.AggregateID, e.AggregateType, e.EventType, e.Payload, e.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert outbox entry %s: %w", e.EventType, err)
		}
	}
	return nil
}

func (r *OutboxRepo) FetchUnpublished(ctx context.Context, batchSize int) ([]events.OutboxEntry, error) {
	rows, err := r.db.Query(ctx, fetchUnpublishedSQL, batchSize)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var out []events.OutboxEntry
	for rows.Next() {
		var e events.OutboxEntry
		if err := rows.Scan(&e.ID, &e.AggregateID, &e.AggregateType, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		e.CreatedAt = e.CreatedAt.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox: %w", err)
	}
	return out, nil
}

func (r *OutboxRepo) MarkPublished(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.db.Exec(ctx, markPublishedSQL, ids, r.now().UTC()); err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}
