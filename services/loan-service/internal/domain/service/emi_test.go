package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateEMI(t *testing.T) {
	tests := []struct {
		name      string
		principal int64
		rate      float64
		tenure    int
		want      int64
	}{
		{"12 percent over 24 months", 150000, 12, 24, 7061},
		{"fractional rate", 100000, 10.5, 36, 3250},
		{"rounds to nearest rupee", 500000, 9.5, 48, 12562},
		{"short tenure", 80000, 12, 12, 7108},
		{"zero rate splits evenly", 120000, 0, 12, 10000},
		{"zero rate rounds", 100000, 0, 7, 14286},
		{"zero tenure", 100000, 12, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateEMI(decimal.NewFromInt(tt.principal), decimal.NewFromFloat(tt.rate), tt.tenure)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s, want %d", got, tt.want)
		})
	}
}

func TestTotalAmount_UsesRoundedEMI(t *testing.T) {
	emi := CalculateEMI(decimal.NewFromInt(150000), decimal.NewFromInt(12), 24)
	total := TotalAmount(emi, 24)

	assert.True(t, total.Equal(decimal.NewFromInt(7061*24)))
	assert.True(t, total.Equal(emi.Mul(decimal.NewFromInt(24))))
}

func TestCalculateEMI_ExtremeTermsStayFinite(t *testing.T) {
	principal := decimal.NewFromInt(100000)

	assert.NotPanics(t, func() {
		got := CalculateEMI(principal, decimal.RequireFromString("0.0000000000000001"), 12)
		assert.True(t, got.Equal(decimal.NewFromInt(8333)), "vanishing rate priced as zero-rate, got %s", got)
	})

	assert.NotPanics(t, func() {
		got := CalculateEMI(principal, decimal.NewFromInt(12), 100000)
		assert.True(t, got.Equal(decimal.NewFromInt(1000)), "overflowing factor falls back to interest-only, got %s", got)
	})
}

func TestDecide_HugeTenureDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		limit := decimal.NewFromInt(100000)
		got := Decide(UnderwritingInput{
			LoanAmount:        decimal.NewFromInt(50000),
			TenureMonths:      100000,
			AnnualRatePercent: decimal.NewFromInt(12),
			PreApprovedLimit:  &limit,
		})
		assert.Equal(t, "APPROVE", got.Decision.String())
	})
}
