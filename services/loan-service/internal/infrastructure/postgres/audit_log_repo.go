package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	pgpkg "github.com/loanflow/loanflow/pkg/postgres"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/port"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/valueobject"
)

var _ port.AuditLog = (*AuditLogRepo)(nil)

const (
	insertAuditEntrySQL = `
		INSERT INTO audit_log (id, customer_id, occurred_at, action, decision, reason, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	listAuditEntriesSQL = `
		SELECT id, customer_id, occurred_at, action, decision, reason, metadata
		FROM audit_log
		WHERE customer_id = $1
		ORDER BY seq
	`
)

// AuditLogRepo implements port.AuditLog on the audit_log table. The table is
// insert-only; seq preserves insertion order.
type AuditLogRepo struct {
	db pgpkg.Querier
}

// NewAuditLogRepo creates a PostgreSQL-backed audit log.
func NewAuditLogRepo(db pgpkg.Querier) *AuditLogRepo {
	return &AuditLogRepo{db: db}
}

// Append assigns a fresh UUID and inserts the entry.
func (r *AuditLogRepo) Append(ctx context.Context, entry model.AuditLogEntry) (model.AuditLogEntry, error) {
	metadata := entry.Metadata()
	if metadata == nil {
		metadata = map[string]any{}
	}
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return model.AuditLogEntry{}, fmt.Errorf("marshal audit metadata: %w", err)
	}

	stored := entry.WithID(uuid.New().String())
	_, err = r.db.Exec(ctx, insertAuditEntrySQL,
		stored.ID(), stored.CustomerID(), stored.Timestamp(), stored.Action(),
		nullableDecision(stored.Decision()), stored.Reason(), metaJSON,
	)
	if err != nil {
		return model.AuditLogEntry{}, fmt.Errorf("insert audit entry: %w", err)
	}
	return stored, nil
}

// ListByCustomer returns the customer's entries in insertion order.
func (r *AuditLogRepo) ListByCustomer(ctx context.Context, customerID string) ([]model.AuditLogEntry, error) {
	rows, err := r.db.Query(ctx, listAuditEntriesSQL, customerID)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.AuditLogEntry, 0)
	for rows.Next() {
		entry, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}

func scanAuditEntry(row pgx.Row) (model.AuditLogEntry, error) {
	var (
		id, customerID, action, reason string
		occurredAt                     time.Time
		decision                       *string
		metaJSON                       []byte
	)
	if err := row.Scan(&id, &customerID, &occurredAt, &action, &decision, &reason, &metaJSON); err != nil {
		return model.AuditLogEntry{}, fmt.Errorf("scan audit entry: %w", err)
	}

	var d valueobject.Decision
	if decision != nil {
		parsed, err := valueobject.NewDecision(*decision)
		if err != nil {
			return model.AuditLogEntry{}, fmt.Errorf("audit entry %s: %w", id, err)
		}
		d = parsed
	}

	var metadata map[string]any
	if err := json.Unmarshal(metaJSON, &metadata); err != nil {
		return model.AuditLogEntry{}, fmt.Errorf("unmarshal audit metadata: %w", err)
	}
	if len(metadata) == 0 {
		metadata = nil
	}

	return model.ReconstructAuditLogEntry(id, customerID, occurredAt.UTC(), action, d, reason, metadata), nil
}

func nullableDecision(d valueobject.Decision) *string {
	if d.IsZero() {
		return nil
	}
	s := d.String()
	return &s
}
