package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanflow/loanflow/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	aggregateUnderwriting = "Underwriting"
	aggregateKyc          = "KycVerification"
	aggregateSanction     = "SanctionLetter"
)

// Event types published to the loan events topic.
const (
	TypeUnderwritingDecided = "loan.underwriting.decided"
	TypeKycVerified         = "loan.kyc.verified"
	TypeSanctionGenerated   = "loan.sanction_letter.generated"
)

// UnderwritingDecided is raised after every underwriting evaluation.
type UnderwritingDecided struct {
	events.BaseEvent
	CustomerID  string          `json:"customer_id"`
	Decision    string          `json:"decision"`
	LoanAmount  decimal.Decimal `json:"loan_amount"`
	EMI         decimal.Decimal `json:"emi"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewUnderwritingDecided keys the event by the underwriting reference number.
func NewUnderwritingDecided(
	referenceNumber, customerID, decision string,
	loanAmount, emi, totalAmount decimal.Decimal,
	now time.Time,
) UnderwritingDecided {
	return UnderwritingDecided{
		BaseEvent:   events.NewBaseEvent(TypeUnderwritingDecided, referenceNumber, aggregateUnderwriting, now),
		CustomerID:  customerID,
		Decision:    decision,
		LoanAmount:  loanAmount,
		EMI:         emi,
		TotalAmount: totalAmount,
	}
}

// KycVerified is raised when a CRM record was found and compared.
type KycVerified struct {
	events.BaseEvent
	Status        string `json:"status"`
	MismatchCount int    `json:"mismatch_count"`
}

func NewKycVerified(customerID, status string, mismatchCount int, now time.Time) KycVerified {
	return KycVerified{
		BaseEvent:     events.NewBaseEvent(TypeKycVerified, customerID, aggregateKyc, now),
		Status:        status,
		MismatchCount: mismatchCount,
	}
}

// SanctionLetterGenerated is raised when a sanction letter is issued.
type SanctionLetterGenerated struct {
	events.BaseEvent
	CustomerID   string          `json:"customer_id"`
	Amount       decimal.Decimal `json:"amount"`
	TenureMonths int             `json:"tenure_months"`
}

func NewSanctionLetterGenerated(
	referenceNumber, customerID string,
	amount decimal.Decimal,
	tenureMonths int,
	now time.Time,
) SanctionLetterGenerated {
	return SanctionLetterGenerated{
		BaseEvent:    events.NewBaseEvent(TypeSanctionGenerated, referenceNumber, aggregateSanction, now),
		CustomerID:   customerID,
		Amount:       amount,
		TenureMonths: tenureMonths,
	}
}
