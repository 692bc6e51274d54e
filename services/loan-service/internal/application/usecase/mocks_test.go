package usecase_test

import (
	"context"
	"errors"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/loanflow/loanflow/pkg/observability"
	"github.com/loanflow/loanflow/services/loan-service/internal/application/usecase"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/event"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/valueobject"
)

var errStoreDown = errors.New("store unavailable")

func newRecorder(audit *mockAuditLog, publisher *mockEventPublisher) *usecase.DirectRecorder {
	return usecase.NewDirectRecorder(audit, publisher, observability.NopLogger())
}

// --- Mock implementations ---

type mockCustomerRepository struct {
	customers map[string]model.CustomerProfile
	crm       map[string]model.CrmIdentityRecord
	offers    []model.LoanOffer
	err       error
}

func newMockCustomerRepository() *mockCustomerRepository {
	return &mockCustomerRepository{
		customers: map[string]model.CustomerProfile{
			"CUST001": {
				CustomerID:       "CUST001",
				Name:             "Anita Verma",
				City:             "Delhi",
				Phone:            "+91-9810000001",
				EmploymentType:   valueobject.EmploymentSalaried,
				MonthlyNetSalary: decimal.NewFromInt(65000),
				CreditScore:      720,
				PreApprovedLimit: decimal.NewFromInt(150000),
			},
			"CUST003": {
				CustomerID:       "CUST003",
				Name:             "Sneha Kapoor",
				City:             "Bengaluru",
				EmploymentType:   valueobject.EmploymentSelfEmployed,
				MonthlyNetSalary: decimal.NewFromInt(120000),
				CreditScore:      790,
				PreApprovedLimit: decimal.NewFromInt(200000),
			},
		},
		crm: map[string]model.CrmIdentityRecord{
			"CUST001": {
				CustomerID: "CUST001",
				Name:       "Anita Verma",
				Phone:      "+91-9810000001",
				Address:    "123 Green Park, South Delhi",
				Pincode:    "110016",
				City:       "Delhi",
			},
		},
		offers: []model.LoanOffer{
			{OfferID: "OFF001", CustomerID: "CUST001", CreditBand: valueobject.CreditBandGood, MaxAmount: decimal.NewFromInt(300000)},
			{OfferID: "OFF003", CustomerID: "CUST003", CreditBand: valueobject.CreditBandExcellent, MaxAmount: decimal.NewFromInt(500000)},
		},
	}
}

func (m *mockCustomerRepository) ListCustomers(_ context.Context) ([]model.CustomerProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.CustomerProfile, 0, len(m.customers))
	for _, c := range m.customers {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCustomerRepository) FindCustomer(_ context.Context, id string) (model.CustomerProfile, bool, error) {
	if m.err != nil {
		return model.CustomerProfile{}, false, m.err
	}
	c, ok := m.customers[id]
	return c, ok, nil
}

func (m *mockCustomerRepository) FindCrmRecord(_ context.Context, id string) (model.CrmIdentityRecord, bool, error) {
	if m.err != nil {
		return model.CrmIdentityRecord{}, false, m.err
	}
	r, ok := m.crm[id]
	return r, ok, nil
}

func (m *mockCustomerRepository) FindCreditReport(_ context.Context, id string) (model.CreditReport, bool, error) {
	if m.err != nil {
		return model.CreditReport{}, false, m.err
	}
	c, ok := m.customers[id]
	if !ok {
		return model.CreditReport{}, false, nil
	}
	return model.CreditReportFor(c), true, nil
}

func (m *mockCustomerRepository) ListOffers(_ context.Context) ([]model.LoanOffer, error) {
	return m.offers, m.err
}

func (m *mockCustomerRepository) ListOffersByCustomer(_ context.Context, id string) ([]model.LoanOffer, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.LoanOffer
	for _, o := range m.offers {
		if o.CustomerID == id {
			out = append(out, o)
		}
	}
	return out, nil
}

type mockAuditLog struct {
	appendErr error
	entries   []model.AuditLogEntry
}

func (m *mockAuditLog) Append(_ context.Context, entry model.AuditLogEntry) (model.AuditLogEntry, error) {
	if m.appendErr != nil {
		return model.AuditLogEntry{}, m.appendErr
	}
	stored := entry.WithID("audit-" + strconv.Itoa(len(m.entries)+1))
	m.entries = append(m.entries, stored)
	return stored, nil
}

func (m *mockAuditLog) ListByCustomer(_ context.Context, customerID string) ([]model.AuditLogEntry, error) {
	var out []model.AuditLogEntry
	for _, e := range m.entries {
		if e.CustomerID() == customerID {
			out = append(out, e)
		}
	}
	return out, nil
}

type mockEventPublisher struct {
	publishErr      error
	publishedEvents []event.DomainEvent
	calls           int
}

func (m *mockEventPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	m.calls++
	if m.publishErr != nil {
		return m.publishErr
	}
	m.publishedEvents = append(m.publishedEvents, events...)
	return nil
}

type mockMetrics struct {
	underwriting []string
	kyc          []string
}

func (m *mockMetrics) RecordUnderwriting(_ context.Context, decision string) {
	m.underwriting = append(m.underwriting, decision)
}

func (m *mockMetrics) RecordKyc(_ context.Context, status string) {
	m.kyc = append(m.kyc, status)
}

type mockSanctionLetterRepository struct {
	saveErr error
	letters map[string]model.SanctionLetter
}

func (m *mockSanctionLetterRepository) Save(_ context.Context, letter model.SanctionLetter) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.letters == nil {
		m.letters = make(map[string]model.SanctionLetter)
	}
	m.letters[letter.ReferenceNumber()] = letter
	return nil
}

func (m *mockSanctionLetterRepository) FindByReference(_ context.Context, ref string) (model.SanctionLetter, bool, error) {
	l, ok := m.letters[ref]
	return l, ok, nil
}

type mockRuleRepository struct {
	rules []model.BusinessRule
	err   error
}

func (m *mockRuleRepository) List(_ context.Context) ([]model.BusinessRule, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]model.BusinessRule(nil), m.rules...), nil
}

func (m *mockRuleRepository) Create(_ context.Context, rule model.BusinessRule) error {
	if m.err != nil {
		return m.err
	}
	if m.index(rule.Name) >= 0 {
		return model.ErrRuleExists
	}
	m.rules = append(m.rules, rule)
	return nil
}

func (m *mockRuleRepository) Update(
	_ context.Context,
	name string,
	fn func(model.BusinessRule) (model.BusinessRule, error),
) (model.BusinessRule, error) {
	i := m.index(name)
	if i < 0 {
		return model.BusinessRule{}, model.ErrRuleNotFound
	}
	updated, err := fn(m.rules[i])
	if err != nil {
		return model.BusinessRule{}, err
	}
	m.rules[i] = updated
	return updated, nil
}

func (m *mockRuleRepository) Delete(_ context.Context, name string) error {
	i := m.index(name)
	if i < 0 {
		return model.ErrRuleNotFound
	}
	m.rules = append(m.rules[:i], m.rules[i+1:]...)
	return nil
}

func (m *mockRuleRepository) index(name string) int {
	for i, r := range m.rules {
		if r.Name == name {
			return i
		}
	}
	return -1
}

type mockProductCatalog struct {
	products []model.LoanProduct
	err      error
}

func (m *mockProductCatalog) ListProducts(_ context.Context) ([]model.LoanProduct, error) {
	return m.products, m.err
}
