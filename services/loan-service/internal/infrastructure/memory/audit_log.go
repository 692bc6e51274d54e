package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
)

// AuditLog is an append-only, process-lifetime audit trail. Entries are never
// updated or removed.
type AuditLog struct {
	mu      sync.RWMutex
	entries []model.AuditLogEntry
}

// NewAuditLog returns an empty audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Append assigns a fresh UUID and stores the entry.
func (l *AuditLog) Append(_ context.Context, entry model.AuditLogEntry) (model.AuditLogEntry, error) {
	stored := entry.WithID(uuid.New().String())

	l.mu.Lock()
	l.entries = append(l.entries, stored)
	l.mu.Unlock()

	return stored, nil
}

// ListByCustomer returns the customer's entries in insertion order.
func (l *AuditLog) ListByCustomer(_ context.Context, customerID string) ([]model.AuditLogEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.AuditLogEntry, 0)
	for _, e := range l.entries {
		if e.CustomerID() == customerID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Len reports the total number of stored entries.
func (l *AuditLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
