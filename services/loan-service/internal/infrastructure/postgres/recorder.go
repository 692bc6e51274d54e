package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/loanflow/loanflow/pkg/events"
	pgpkg "github.com/loanflow/loanflow/pkg/postgres"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/event"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/port"
)

var _ port.DecisionRecorder = (*OutboxRecorder)(nil)

// OutboxRecorder writes the audit row and its events to the outbox in one
// transaction. A relay publishes the outbox afterwards.
type OutboxRecorder struct {
	db pgpkg.TxBeginner
}

// NewOutboxRecorder creates a recorder on the given pool.
func NewOutboxRecorder(db pgpkg.TxBeginner) *OutboxRecorder {
	return &OutboxRecorder{db: db}
}

// Record commits the entry and all events, or nothing.
func (r *OutboxRecorder) Record(ctx context.Context, entry model.AuditLogEntry, evts ...event.DomainEvent) (model.AuditLogEntry, error) {
	outbox, err := events.NewOutboxEntries(evts...)
	if err != nil {
		return model.AuditLogEntry{}, err
	}

	var stored model.AuditLogEntry
	err = pgpkg.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		if stored, err = NewAuditLogRepo(tx).Append(ctx, entry); err != nil {
			return err
		}
		return NewOutboxRepo(tx).Store(ctx, outbox)
	})
	if err != nil {
		return model.AuditLogEntry{}, fmt.Errorf("record decision: %w", err)
	}
	return stored, nil
}
