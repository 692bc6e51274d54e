package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
)

// CustomerRepository implements port.CustomerRepository over in-process maps.
type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]model.CustomerProfile
	crm       map[string]model.CrmIdentityRecord
	offers    []model.LoanOffer
}

// NewCustomerRepository builds a repository from the given reference data.
func NewCustomerRepository(
	customers []model.CustomerProfile,
	crm []model.CrmIdentityRecord,
	offers []model.LoanOffer,
) *CustomerRepository {
	r := &CustomerRepository{
		customers: make(map[string]model.CustomerProfile, len(customers)),
		crm:       make(map[string]model.CrmIdentityRecord, len(crm)),
		offers:    slices.Clone(offers),
	}
	for _, c := range customers {
		r.customers[c.CustomerID] = c
	}
	for _, rec := range crm {
		r.crm[rec.CustomerID] = rec
	}
	return r
}

// NewSeededCustomerRepository returns a repository holding the synthetic
// customer book.
func NewSeededCustomerRepository() *CustomerRepository {
	return NewCustomerRepository(SeedCustomers(), SeedCrmRecords(), SeedOffers())
}

// ListCustomers returns every profile ordered by customer ID.
func (r *CustomerRepository) ListCustomers(_ context.Context) ([]model.CustomerProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.CustomerProfile, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b model.CustomerProfile) int {
		return strings.Compare(a.CustomerID, b.CustomerID)
	})
	return out, nil
}

func (r *CustomerRepository) FindCustomer(_ context.Context, customerID string) (model.CustomerProfile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[customerID]
	return c, ok, nil
}

func (r *CustomerRepository) FindCrmRecord(_ context.Context, customerID string) (model.CrmIdentityRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.crm[customerID]
	return rec, ok, nil
}

// FindCreditReport derives the bureau view from the stored profile.
func (r *CustomerRepository) FindCreditReport(ctx context.Context, customerID string) (model.CreditReport, bool, error) {
	c, ok, err := r.FindCustomer(ctx, customerID)
	if err != nil || !ok {
		return model.CreditReport{}, ok, err
	}
	return model.CreditReportFor(c), true, nil
}

func (r *CustomerRepository) ListOffers(_ context.Context) ([]model.LoanOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.offers), nil
}

// ListOffersByCustomer returns the customer's offers in seed order. An
// unknown customer yields an empty slice.
func (r *CustomerRepository) ListOffersByCustomer(_ context.Context, customerID string) ([]model.LoanOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.LoanOffer, 0, 1)
	for _, o := range r.offers {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}
