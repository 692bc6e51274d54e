package service

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/valueobject"
)

// KycSubmission holds the identity fields supplied by the applicant.
type KycSubmission struct {
	Name    string
	Phone   string
	Address string
}

// KycVerifier compares submissions against the CRM record of reference.
type KycVerifier struct{}

// NewKycVerifier returns a verifier.
func NewKycVerifier() *KycVerifier {
	return &KycVerifier{}
}

// Verify checks name, phone and address independently. The result is VERIFIED
// when nothing mismatches and PENDING otherwise; it is never FAILED.
func (v *KycVerifier) Verify(record model.CrmIdentityRecord, provided KycSubmission) model.KycVerificationResult {
	mismatches := []string{}

	if !NamesMatch(provided.Name, record.Name) {
		mismatches = append(mismatches,
			fmt.Sprintf("Name mismatch: provided \"%s\", expected \"%s\"", provided.Name, record.Name))
	}

	if NormalizePhone(provided.Phone) != NormalizePhone(record.Phone) {
		mismatches = append(mismatches, fmt.Sprintf("Phone mismatch: provided \"%s\"", provided.Phone))
	}

	if !addressMatches(provided.Address, record) {
		mismatches = append(mismatches,
			fmt.Sprintf("Address must include city (%s) or pincode (%s)", record.City, record.Pincode))
	}

	status := valueobject.KycStatusVerified
	if len(mismatches) > 0 {
		status = valueobject.KycStatusPending
	}
	return model.KycVerificationResult{Status: status, Mismatches: mismatches}
}

// NormalizePhone strips whitespace and hyphens.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
}

func addressMatches(address string, record model.CrmIdentityRecord) bool {
	lower := strings.ToLower(address)
	return strings.Contains(lower, strings.ToLower(record.City)) ||
		strings.Contains(lower, record.Pincode)
}
