package model

import (
	"github.com/shopspring/decimal"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/valueobject"
)

// UnderwritingResult is the outcome of one underwriting evaluation.
// RequiredAction is empty for approvals.
type UnderwritingResult struct {
	Decision        valueobject.Decision
	Reason          string
	RequiredAction  string
	EMI             decimal.Decimal
	TotalAmount     decimal.Decimal
	ReferenceNumber string
}

// KycVerificationResult is the outcome of one KYC verification. Mismatches is
// empty iff Status is VERIFIED.
type KycVerificationResult struct {
	Status     valueobject.KycStatus
	Mismatches []string
}

// CrmRecordMissing is the mismatch reported when no CRM record exists.
const CrmRecordMissing = "Customer not found in CRM"

// KycCustomerNotFound is the terminal FAILED result.
func KycCustomerNotFound() KycVerificationResult {
	return KycVerificationResult{
		Status:     valueobject.KycStatusFailed,
		Mismatches: []string{CrmRecordMissing},
	}
}
