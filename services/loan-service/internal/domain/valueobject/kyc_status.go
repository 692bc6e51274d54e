package valueobject

import "fmt"

// KycStatus is the outcome of a KYC verification.
//
// FAILED is reserved for "no CRM record"; a found record with mismatching
// fields is PENDING.
type KycStatus struct {
	value string
}

const (
	kycStatusVerified = "VERIFIED"
	kycStatusPending  = "PENDING"
	kycStatusFailed   = "FAILED"
)

var (
	KycStatusVerified = KycStatus{value: kycStatusVerified}
	KycStatusPending  = KycStatus{value: kycStatusPending}
	KycStatusFailed   = KycStatus{value: kycStatusFailed}
)

var validKycStatuses = map[string]KycStatus{
	kycStatusVerified: KycStatusVerified,
	kycStatusPending:  KycStatusPending,
	kycStatusFailed:   KycStatusFailed,
}

// NewKycStatus creates a KycStatus from a raw string.
func NewKycStatus(s string) (KycStatus, error) {
	v, ok := validKycStatuses[s]
	if !ok {
		return KycStatus{}, fmt.Errorf("invalid KYC status: %q", s)
	}
	return v, nil
}

func (s KycStatus) String() string { return s.value }

func (s KycStatus) Equal(other KycStatus) bool { return s.value == other.value }
