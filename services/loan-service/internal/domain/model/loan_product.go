package model

import "github.com/shopspring/decimal"

// LoanProduct is a partner-bank product shown in the catalog. Rates, fees and
// tenures are display strings; MaxAmount is nil when the ceiling is relative
// (MaxAmountNote, e.g. "100% On-Road Price").
type LoanProduct struct {
	ID            string
	BankName      string
	LoanType      string
	ProductName   string
	InterestRate  string
	ProcessingFee string
	MaxAmount     *decimal.Decimal
	MaxAmountNote string
	TenureRange   string
	Features      []string
	Logo          string
	Category      string
}
