package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/loanflow/loanflow/pkg/money"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
)

// ProductFilter narrows the catalog. Empty fields match everything;
// comparisons ignore case.
type ProductFilter struct {
	Category string
	Bank     string
}

// Matches reports whether p passes the filter.
func (f ProductFilter) Matches(p model.LoanProduct) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, p.Category) {
		return false
	}
	if f.Bank != "" && !strings.EqualFold(f.Bank, p.BankName) {
		return false
	}
	return true
}

// LoanProductResponse is the external representation of a catalog product.
// MaxAmount is absent when the bank quotes a relative ceiling, which is then
// carried in MaxAmountNote.
type LoanProductResponse struct {
	ID            string           `json:"id"`
	BankName      string           `json:"bank_name"`
	LoanType      string           `json:"loan_type"`
	ProductName   string           `json:"product_name"`
	InterestRate  string           `json:"interest_rate"`
	ProcessingFee string           `json:"processing_fee"`
	MaxAmount     *decimal.Decimal `json:"max_amount,omitempty"`
	MaxAmountNote string           `json:"max_amount_note,omitempty"`
	Currency      string           `json:"currency"`
	TenureRange   string           `json:"tenure_range"`
	Features      []string         `json:"features"`
	Logo          string           `json:"logo,omitempty"`
	Category      string           `json:"category"`
}

// FromLoanProduct maps a catalog product.
func FromLoanProduct(p model.LoanProduct) LoanProductResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return LoanProductResponse{
		ID:            p.ID,
		BankName:      p.BankName,
		LoanType:      p.LoanType,
		ProductName:   p.ProductName,
		InterestRate:  p.InterestRate,
		ProcessingFee: p.ProcessingFee,
		MaxAmount:     p.MaxAmount,
		MaxAmountNote: p.MaxAmountNote,
		Currency:      money.INR.Code(),
		TenureRange:   p.TenureRange,
		Features:      features,
		Logo:          p.Logo,
		Category:      p.Category,
	}
}
