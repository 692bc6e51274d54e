package model

import (
	"errors"
	"maps"
	"time"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/valueobject"
)

// Audit actions written by the service.
const (
	ActionUnderwritingDecision    = "UNDERWRITING_DECISION"
	ActionKycVerification         = "KYC_VERIFICATION"
	ActionSanctionLetterGenerated = "SANCTION_LETTER_GENERATED"
	ActionRulesEvaluation         = "RULES_EVALUATION"
)

// AuditLogEntry is an immutable fact about a decision event. The id is empty
// until the entry has been appended to an audit log.
type AuditLogEntry struct {
	id         string
	customerID string
	timestamp  time.Time
	action     string
	decision   valueobject.Decision
	reason     string
	metadata   map[string]any
}

// NewAuditLogEntry builds an entry that has not yet been stored. decision may
// be the zero Decision for events other than underwriting.
func NewAuditLogEntry(
	customerID, action string,
	decision valueobject.Decision,
	reason string,
	metadata map[string]any,
	now time.Time,
) (AuditLogEntry, error) {
	if customerID == "" {
		return AuditLogEntry{}, errors.New("customer ID is required")
	}
	if action == "" {
		return AuditLogEntry{}, errors.New("action is required")
	}
	return AuditLogEntry{
		customerID: customerID,
		timestamp:  now.UTC(),
		action:     action,
		decision:   decision,
		reason:     reason,
		metadata:   maps.Clone(metadata),
	}, nil
}

// ReconstructAuditLogEntry rebuilds a stored entry without validation.
func ReconstructAuditLogEntry(
	id, customerID string,
	timestamp time.Time,
	action string,
	decision valueobject.Decision,
	reason string,
	metadata map[string]any,
) AuditLogEntry {
	return AuditLogEntry{
		id:         id,
		customerID: customerID,
		timestamp:  timestamp,
		action:     action,
		decision:   decision,
		reason:     reason,
		metadata:   metadata,
	}
}

// WithID returns a copy of the entry carrying the storage-assigned id.
func (e AuditLogEntry) WithID(id string) AuditLogEntry {
	next := e
	next.id = id
	return next
}

func (e AuditLogEntry) ID() string                     { return e.id }
func (e AuditLogEntry) CustomerID() string             { return e.customerID }
func (e AuditLogEntry) Timestamp() time.Time           { return e.timestamp }
func (e AuditLogEntry) Action() string                 { return e.action }
func (e AuditLogEntry) Decision() valueobject.Decision { return e.decision }
func (e AuditLogEntry) Reason() string                 { return e.reason }

// Metadata returns a shallow copy of the entry's metadata.
func (e AuditLogEntry) Metadata() map[string]any { return maps.Clone(e.metadata) }
