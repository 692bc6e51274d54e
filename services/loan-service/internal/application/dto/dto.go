package dto

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// VerifyKycRequest carries the identity fields an applicant submitted.
type VerifyKycRequest struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

// Validate checks field presence.
func (r VerifyKycRequest) Validate() error {
	return requireFields(map[string]string{
		"customer_id": r.CustomerID,
		"name":        r.Name,
		"phone":       r.Phone,
		"address":     r.Address,
	})
}

// EvaluateUnderwritingRequest carries one loan request. The optional fields
// are nil when unknown.
type EvaluateUnderwritingRequest struct {
	CustomerID        string           `json:"customer_id"`
	LoanAmount        decimal.Decimal  `json:"loan_amount"`
	TenureMonths      int              `json:"tenure_months"`
	AnnualRatePercent decimal.Decimal  `json:"annual_rate_percent"`
	CreditScore       *int             `json:"credit_score,omitempty"`
	PreApprovedLimit  *decimal.Decimal `json:"pre_approved_limit,omitempty"`
	MonthlyNetSalary  *decimal.Decimal `json:"monthly_net_salary,omitempty"`
}

// Validate rejects requests the engine must never see.
func (r EvaluateUnderwritingRequest) Validate() error {
	if err := requireFields(map[string]string{"customer_id": r.CustomerID}); err != nil {
		return err
	}
	if !r.LoanAmount.IsPositive() {
		return fmt.Errorf("%w: loan_amount must be positive", model.ErrInvalidRequest)
	}
	if err := validateTerms(r.TenureMonths, r.AnnualRatePercent); err != nil {
		return err
	}
	if r.PreApprovedLimit != nil && r.PreApprovedLimit.IsNegative() {
		return fmt.Errorf("%w: pre_approved_limit must not be negative", model.ErrInvalidRequest)
	}
	if r.MonthlyNetSalary != nil && r.MonthlyNetSalary.IsNegative() {
		return fmt.Errorf("%w: monthly_net_salary must not be negative", model.ErrInvalidRequest)
	}
	return nil
}

// validateTerms bounds tenure and rate so instalments stay computable.
func validateTerms(tenureMonths int, annualRatePercent decimal.Decimal) error {
	if tenureMonths <= 0 {
		return fmt.Errorf("%w: tenure_months must be positive", model.ErrInvalidRequest)
	}
	if tenureMonths > model.MaxTenureMonths {
		return fmt.Errorf("%w: tenure_months must not exceed %d", model.ErrInvalidRequest, model.MaxTenureMonths)
	}
	if annualRatePercent.IsNegative() {
		return fmt.Errorf("%w: annual_rate_percent must not be negative", model.ErrInvalidRequest)
	}
	if annualRatePercent.GreaterThan(model.MaxAnnualRatePercent) {
		return fmt.Errorf("%w: annual_rate_percent must not exceed %s", model.ErrInvalidRequest, model.MaxAnnualRatePercent)
	}
	return nil
}

// ExtractSalaryRequest identifies whose salary slip is being read.
type ExtractSalaryRequest struct {
	CustomerID string `json:"customer_id"`
}

// GenerateSanctionLetterRequest carries the sanctioned terms.
type GenerateSanctionLetterRequest struct {
	CustomerID        string          `json:"customer_id"`
	Amount            decimal.Decimal `json:"amount"`
	TenureMonths      int             `json:"tenure_months"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	Signatory         string          `json:"signatory,omitempty"`
}

// Validate checks the sanctioned terms.
func (r GenerateSanctionLetterRequest) Validate() error {
	if err := requireFields(map[string]string{"customer_id": r.CustomerID}); err != nil {
		return err
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", model.ErrInvalidRequest)
	}
	if err := validateTerms(r.TenureMonths, r.AnnualRatePercent); err != nil {
		return err
	}
	return nil
}

func requireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return fmt.Errorf("%w: missing %s", model.ErrInvalidRequest, strings.Join(missing, ", "))
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// KycVerificationResponse is the external KYC outcome.
type KycVerificationResponse struct {
	Status     string   `json:"status"`
	Mismatches []string `json:"mismatches"`
}

// UnderwritingResponse is the external underwriting outcome.
type UnderwritingResponse struct {
	Decision        string          `json:"decision"`
	Reason          string          `json:"reason"`
	RequiredAction  string          `json:"required_action,omitempty"`
	EMI             decimal.Decimal `json:"emi"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ReferenceNumber string          `json:"reference_number"`
}

// AuditLogEntryResponse is the external representation of an audit entry.
type AuditLogEntryResponse struct {
	ID         string         `json:"id"`
	CustomerID string         `json:"customer_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Action     string         `json:"action"`
	Decision   string         `json:"decision,omitempty"`
	Reason     string         `json:"reason"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// CustomerResponse is the external representation of a customer profile.
type CustomerResponse struct {
	CustomerID         string          `json:"customer_id"`
	Name               string          `json:"name"`
	Age                int             `json:"age"`
	City               string          `json:"city"`
	Phone              string          `json:"phone"`
	Email              string          `json:"email"`
	EmploymentType     string          `json:"employment_type"`
	MonthlyNetSalary   decimal.Decimal `json:"monthly_net_salary"`
	CreditScore        int             `json:"credit_score"`
	PreApprovedLimit   decimal.Decimal `json:"pre_approved_limit"`
	ExistingLoan       bool            `json:"existing_loan"`
	ExistingLoanAmount decimal.Decimal `json:"existing_loan_amount"`
}

// CrmRecordResponse is the external representation of a CRM record.
type CrmRecordResponse struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Pincode    string `json:"pincode"`
	City       string `json:"city"`
	DOB        string `json:"dob"`
}

// CreditReportResponse is the bureau view of a customer.
type CreditReportResponse struct {
	CustomerID       string          `json:"customer_id"`
	Score            int             `json:"score"`
	PreApprovedLimit decimal.Decimal `json:"pre_approved_limit"`
}

// LoanOfferResponse is the external representation of a pre-approved offer.
type LoanOfferResponse struct {
	OfferID       string          `json:"offer_id"`
	CustomerID    string          `json:"customer_id"`
	CreditBand    string          `json:"credit_band"`
	MaxAmount     decimal.Decimal `json:"max_amount"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	TenureMonths  int             `json:"tenure_months"`
	ProcessingFee decimal.Decimal `json:"processing_fee"`
}

// CustomerOffersResponse groups the offers of one customer.
type CustomerOffersResponse struct {
	CustomerID  string              `json:"customer_id"`
	Offers      []LoanOfferResponse `json:"offers"`
	TotalOffers int                 `json:"total_offers"`
}

// SalarySlipResponse is the result of reading a salary slip.
type SalarySlipResponse struct {
	GrossIncome decimal.Decimal `json:"gross_income"`
	NetIncome   decimal.Decimal `json:"net_income"`
	Employer    string          `json:"employer"`
	Parsed      bool            `json:"parsed"`
}

// SanctionLetterResponse is the external representation of a sanction letter.
type SanctionLetterResponse struct {
	ReferenceNumber   string          `json:"reference_number"`
	CustomerID        string          `json:"customer_id"`
	Amount            decimal.Decimal `json:"amount"`
	TenureMonths      int             `json:"tenure_months"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	EMI               decimal.Decimal `json:"emi"`
	TotalPayable      decimal.Decimal `json:"total_payable"`
	Signatory         string          `json:"signatory,omitempty"`
	GeneratedAt       time.Time       `json:"generated_at"`
}
