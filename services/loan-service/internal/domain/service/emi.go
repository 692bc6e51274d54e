package service

import (
	"math"

	"github.com/shopspring/decimal"
)

// CalculateEMI returns the monthly instalment for a reducing-balance loan,
// rounded to the nearest whole rupee:
//
//	r   = annualRatePercent / 12 / 100
//	emi = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate splits the principal evenly. Non-positive tenures yield zero.
// Rates too small to move (1+r) in float64 are priced as zero-rate, and a
// growth factor that overflows falls back to the interest-only limit P*r.
func CalculateEMI(principal, annualRatePercent decimal.Decimal, tenureMonths int) decimal.Decimal {
	if tenureMonths <= 0 {
		return decimal.Zero
	}

	monthlyRate := annualRatePercent.InexactFloat64() / 12 / 100
	factor := math.Pow(1+monthlyRate, float64(tenureMonths))
	if monthlyRate == 0 || factor == 1 {
		return principal.Div(decimal.NewFromInt(int64(tenureMonths))).Round(0)
	}
	if math.IsInf(factor, 0) || math.IsNaN(factor) {
		return principal.Mul(decimal.NewFromFloat(monthlyRate)).Round(0)
	}

	emi := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
	if math.IsInf(emi, 0) || math.IsNaN(emi) {
		return principal.Mul(decimal.NewFromFloat(monthlyRate)).Round(0)
	}
	return decimal.NewFromFloat(emi).Round(0)
}

// TotalAmount is the rounded EMI multiplied by the tenure.
func TotalAmount(emi decimal.Decimal, tenureMonths int) decimal.Decimal {
	return emi.Mul(decimal.NewFromInt(int64(tenureMonths)))
}
