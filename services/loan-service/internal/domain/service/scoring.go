package service

import (
	"math"

	"github.com/shopspring/decimal"
)

// Weights of the application score. They sum to 1.
const (
	creditWeight      = 0.5
	incomeWeight      = 0.3
	loanToLimitWeight = 0.2

	creditScoreCeiling = 900
	salaryCeiling      = 200000
)

// ApplicationScore is an advisory 0..1 score recorded with each underwriting
// decision. It never influences the decision itself.
type ApplicationScore struct {
	Credit      float64 `json:"credit"`
	Income      float64 `json:"income"`
	LoanToLimit float64 `json:"loanToLimit"`
	Score       float64 `json:"score"`
}

// ScoreApplication normalises each factor to [0,1] and combines them.
// Unknown inputs should be passed as zero.
func ScoreApplication(creditScore int, monthlyNetSalary, preApprovedLimit, loanAmount decimal.Decimal) ApplicationScore {
	s := ApplicationScore{
		Credit:      capUnit(float64(creditScore) / creditScoreCeiling),
		Income:      capUnit(monthlyNetSalary.InexactFloat64() / salaryCeiling),
		LoanToLimit: 1,
	}
	if loanAmount.IsPositive() {
		s.LoanToLimit = capUnit(preApprovedLimit.Div(loanAmount).InexactFloat64())
	}
	s.Score = round2(s.Credit*creditWeight + s.Income*incomeWeight + s.LoanToLimit*loanToLimitWeight)
	return s
}

func capUnit(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
