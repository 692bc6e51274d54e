package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/event"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/port"
)

var _ port.DecisionRecorder = (*DirectRecorder)(nil)

// DirectRecorder appends to the audit log and then publishes events straight
// to the broker. Publish failures are logged; the decision already stands.
type DirectRecorder struct {
	audit     port.AuditLog
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewDirectRecorder wires dependencies.
func NewDirectRecorder(audit port.AuditLog, publisher port.EventPublisher, logger *slog.Logger) *DirectRecorder {
	return &DirectRecorder{audit: audit, publisher: publisher, logger: logger}
}

// Record stores entry and publishes events only when the append succeeded.
func (r *DirectRecorder) Record(ctx context.Context, entry model.AuditLogEntry, events ...event.DomainEvent) (model.AuditLogEntry, error) {
	stored, err := r.audit.Append(ctx, entry)
	if err != nil {
		return model.AuditLogEntry{}, fmt.Errorf("append audit entry: %w", err)
	}
	if len(events) == 0 {
		return stored, nil
	}
	if err := r.publisher.Publish(ctx, events...); err != nil {
		r.logger.WarnContext(ctx, "failed to publish domain events", "error", err, "count", len(events))
	}
	return stored, nil
}
