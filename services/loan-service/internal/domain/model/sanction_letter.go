package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// SanctionLetter records the terms of a sanctioned loan.
type SanctionLetter struct {
	referenceNumber string
	customerID      string
	amount          decimal.Decimal
	tenureMonths    int
	annualRate      decimal.Decimal
	emi             decimal.Decimal
	signatory       string
	generatedAt     time.Time
}

// NewSanctionLetter validates and builds a sanction letter.
func NewSanctionLetter(
	referenceNumber, customerID string,
	amount decimal.Decimal,
	tenureMonths int,
	annualRate, emi decimal.Decimal,
	signatory string,
	now time.Time,
) (SanctionLetter, error) {
	if referenceNumber == "" {
		return SanctionLetter{}, errors.New("reference number is required")
	}
	if customerID == "" {
		return SanctionLetter{}, errors.New("customer ID is required")
	}
	if !amount.IsPositive() {
		return SanctionLetter{}, errors.New("amount must be positive")
	}
	if tenureMonths <= 0 {
		return SanctionLetter{}, errors.New("tenure must be positive")
	}
	if annualRate.IsNegative() {
		return SanctionLetter{}, errors.New("rate must not be negative")
	}
	return SanctionLetter{
		referenceNumber: referenceNumber,
		customerID:      customerID,
		amount:          amount,
		tenureMonths:    tenureMonths,
		annualRate:      annualRate,
		emi:             emi,
		signatory:       signatory,
		generatedAt:     now.UTC(),
	}, nil
}

func (l SanctionLetter) ReferenceNumber() string     { return l.referenceNumber }
func (l SanctionLetter) CustomerID() string          { return l.customerID }
func (l SanctionLetter) Amount() decimal.Decimal     { return l.amount }
func (l SanctionLetter) TenureMonths() int           { return l.tenureMonths }
func (l SanctionLetter) AnnualRate() decimal.Decimal { return l.annualRate }
func (l SanctionLetter) EMI() decimal.Decimal        { return l.emi }
func (l SanctionLetter) Signatory() string           { return l.signatory }
func (l SanctionLetter) GeneratedAt() time.Time      { return l.generatedAt }

// TotalPayable is emi × tenure.
func (l SanctionLetter) TotalPayable() decimal.Decimal {
	return l.emi.Mul(decimal.NewFromInt(int64(l.tenureMonths)))
}
