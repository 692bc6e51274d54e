package usecase

import (
	"context"
	"fmt"

	"github.com/loanflow/loanflow/services/loan-service/internal/application/dto"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/port"
)

// CustomerDirectoryUseCase serves read-only customer, CRM, credit and offer
// lookups.
type CustomerDirectoryUseCase struct {
	customers port.CustomerRepository
}

// NewCustomerDirectoryUseCase wires dependencies.
func NewCustomerDirectoryUseCase(customers port.CustomerRepository) *CustomerDirectoryUseCase {
	return &CustomerDirectoryUseCase{customers: customers}
}

// ListCustomers returns every known profile.
func (uc *CustomerDirectoryUseCase) ListCustomers(ctx context.Context) ([]dto.CustomerResponse, error) {
	customers, err := uc.customers.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, dto.FromCustomer(c))
	}
	return out, nil
}

// GetCustomer returns one profile or ErrCustomerNotFound.
func (uc *CustomerDirectoryUseCase) GetCustomer(ctx context.Context, customerID string) (dto.CustomerResponse, error) {
	c, found, err := uc.customers.FindCustomer(ctx, customerID)
	if err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("find customer: %w", err)
	}
	if !found {
		return dto.CustomerResponse{}, fmt.Errorf("customer %s: %w", customerID, model.ErrCustomerNotFound)
	}
	return dto.FromCustomer(c), nil
}

// GetCrmRecord returns the CRM record or ErrCustomerNotFound.
func (uc *CustomerDirectoryUseCase) GetCrmRecord(ctx context.Context, customerID string) (dto.CrmRecordResponse, error) {
	r, found, err := uc.customers.FindCrmRecord(ctx, customerID)
	if err != nil {
		return dto.CrmRecordResponse{}, fmt.Errorf("find CRM record: %w", err)
	}
	if !found {
		return dto.CrmRecordResponse{}, fmt.Errorf("CRM record %s: %w", customerID, model.ErrCustomerNotFound)
	}
	return dto.FromCrmRecord(r), nil
}

// GetCreditReport returns the bureau view or ErrCustomerNotFound.
func (uc *CustomerDirectoryUseCase) GetCreditReport(ctx context.Context, customerID string) (dto.CreditReportResponse, error) {
	r, found, err := uc.customers.FindCreditReport(ctx, customerID)
	if err != nil {
		return dto.CreditReportResponse{}, fmt.Errorf("find credit report: %w", err)
	}
	if !found {
		return dto.CreditReportResponse{}, fmt.Errorf("credit report %s: %w", customerID, model.ErrCustomerNotFound)
	}
	return dto.FromCreditReport(r), nil
}

// ListOffers returns every pre-approved offer.
func (uc *CustomerDirectoryUseCase) ListOffers(ctx context.Context) ([]dto.LoanOfferResponse, error) {
	offers, err := uc.customers.ListOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	return dto.FromLoanOffers(offers), nil
}

// ListOffersByCustomer returns the offers owned by one customer, possibly none.
func (uc *CustomerDirectoryUseCase) ListOffersByCustomer(ctx context.Context, customerID string) (dto.CustomerOffersResponse, error) {
	offers, err := uc.customers.ListOffersByCustomer(ctx, customerID)
	if err != nil {
		return dto.CustomerOffersResponse{}, fmt.Errorf("list offers for %s: %w", customerID, err)
	}
	mapped := dto.FromLoanOffers(offers)
	return dto.CustomerOffersResponse{
		CustomerID:  customerID,
		Offers:      mapped,
		TotalOffers: len(mapped),
	}, nil
}
