package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/loanflow/loanflow/services/loan-service/internal/application/dto"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/port"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/valueobject"
)

// Defaults used when the slip cannot be tied to a known customer.
const (
	DefaultEmployer      = "Agentic Technologies Pvt. Ltd."
	SelfEmployedEmployer = "Self-Employed"
)

var (
	defaultNetSalary = decimal.NewFromInt(50000)
	grossUpFactor    = decimal.NewFromFloat(1.3)
)

// ExtractSalaryUseCase simulates reading an uploaded salary slip. No document
// is parsed; the figures come from the customer profile.
type ExtractSalaryUseCase struct {
	customers port.CustomerRepository
}

// NewExtractSalaryUseCase wires dependencies.
func NewExtractSalaryUseCase(customers port.CustomerRepository) *ExtractSalaryUseCase {
	return &ExtractSalaryUseCase{customers: customers}
}

// Execute returns gross = round(net × 1.3) along with the net salary and
// employer.
func (uc *ExtractSalaryUseCase) Execute(ctx context.Context, req dto.ExtractSalaryRequest) (dto.SalarySlipResponse, error) {
	slip := model.SalarySlip{
		NetIncome: defaultNetSalary,
		Employer:  DefaultEmployer,
		Parsed:    true,
	}

	if req.CustomerID != "" {
		customer, found, err := uc.customers.FindCustomer(ctx, req.CustomerID)
		if err != nil {
			return dto.SalarySlipResponse{}, fmt.Errorf("find customer: %w", err)
		}
		if found {
			slip.NetIncome = customer.MonthlyNetSalary
			if customer.EmploymentType.Equal(valueobject.EmploymentSelfEmployed) {
				slip.Employer = SelfEmployedEmployer
			}
		}
	}
	slip.GrossIncome = slip.NetIncome.Mul(grossUpFactor).Round(0)

	return dto.SalarySlipResponse{
		GrossIncome: slip.GrossIncome,
		NetIncome:   slip.NetIncome,
		Employer:    slip.Employer,
		Parsed:      slip.Parsed,
	}, nil
}
