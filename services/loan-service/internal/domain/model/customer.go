package model

import (
	"github.com/shopspring/decimal"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/valueobject"
)

// CustomerProfile is the identity and financial snapshot used for decisioning.
// Profiles are seeded at start-up and never mutated.
type CustomerProfile struct {
	CustomerID         string
	Name               string
	Age                int
	City               string
	Phone              string
	Email              string
	EmploymentType     valueobject.EmploymentType
	MonthlyNetSalary   decimal.Decimal
	CreditScore        int
	PreApprovedLimit   decimal.Decimal
	ExistingLoan       bool
	ExistingLoanAmount decimal.Decimal
}

// CrmIdentityRecord holds the ground-truth identity fields KYC compares against.
type CrmIdentityRecord struct {
	CustomerID string
	Name       string
	Phone      string
	Address    string
	Pincode    string
	City       string
	DOB        string
}

// LoanOffer is a read-only pre-approved offer.
type LoanOffer struct {
	OfferID       string
	CustomerID    string
	CreditBand    valueobject.CreditBand
	MaxAmount     decimal.Decimal
	InterestRate  decimal.Decimal
	TenureMonths  int
	ProcessingFee decimal.Decimal
}

// CreditReport is the bureau view of a customer.
type CreditReport struct {
	CustomerID       string
	Score            int
	PreApprovedLimit decimal.Decimal
}

// CreditReportFor derives the bureau view from a profile.
func CreditReportFor(p CustomerProfile) CreditReport {
	return CreditReport{
		CustomerID:       p.CustomerID,
		Score:            p.CreditScore,
		PreApprovedLimit: p.PreApprovedLimit,
	}
}

// SalarySlip is the result of reading an uploaded salary slip.
type SalarySlip struct {
	GrossIncome decimal.Decimal
	NetIncome   decimal.Decimal
	Employer    string
	Parsed      bool
}
