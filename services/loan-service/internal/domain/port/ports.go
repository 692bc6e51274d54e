package port

import (
	"context"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/event"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// CustomerRepository is the read-only source of customer, CRM and offer
// reference data. Lookups report absence with found=false and a nil error.
type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]model.CustomerProfile, error)
	FindCustomer(ctx context.Context, customerID string) (model.CustomerProfile, bool, error)
	FindCrmRecord(ctx context.Context, customerID string) (model.CrmIdentityRecord, bool, error)
	FindCreditReport(ctx context.Context, customerID string) (model.CreditReport, bool, error)
	ListOffers(ctx context.Context) ([]model.LoanOffer, error)
	ListOffersByCustomer(ctx context.Context, customerID string) ([]model.LoanOffer, error)
}

// AuditLog is the append-only per-customer decision trail.
type AuditLog interface {
	// Append assigns a fresh id and stores the entry.
	Append(ctx context.Context, entry model.AuditLogEntry) (model.AuditLogEntry, error)
	// ListByCustomer returns the customer's entries in insertion order.
	ListByCustomer(ctx context.Context, customerID string) ([]model.AuditLogEntry, error)
}

// SanctionLetterRepository stores issued sanction letters.
type SanctionLetterRepository interface {
	Save(ctx context.Context, letter model.SanctionLetter) error
	FindByReference(ctx context.Context, referenceNumber string) (model.SanctionLetter, bool, error)
}

// RuleRepository holds the business rules in descending priority order.
type RuleRepository interface {
	List(ctx context.Context) ([]model.BusinessRule, error)
	// Create fails with model.ErrRuleExists when the name is taken.
	Create(ctx context.Context, rule model.BusinessRule) error
	// Update applies fn to the named rule atomically and re-sorts the set.
	Update(ctx context.Context, name string, fn func(model.BusinessRule) (model.BusinessRule, error)) (model.BusinessRule, error)
	Delete(ctx context.Context, name string) error
}

// ProductCatalog lists the partner-bank loan products.
type ProductCatalog interface {
	ListProducts(ctx context.Context) ([]model.LoanProduct, error)
}

// ---------------------------------------------------------------------------
// Outbound ports
// ---------------------------------------------------------------------------

// DecisionRecorder appends an audit entry together with the events the same
// decision raised. Implementations either commit both or neither, or treat the
// events as best-effort once the entry is stored.
type DecisionRecorder interface {
	Record(ctx context.Context, entry model.AuditLogEntry, events ...event.DomainEvent) (model.AuditLogEntry, error)
}

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// DecisionMetrics counts decisions for dashboards.
type DecisionMetrics interface {
	RecordUnderwriting(ctx context.Context, decision string)
	RecordKyc(ctx context.Context, status string)
}
