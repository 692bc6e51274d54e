package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/loanflow/loanflow/pkg/money"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// UnderwritingEngine – ordered decision cascade
// ---------------------------------------------------------------------------

// MinCreditScore is the credit floor below which applications are rejected.
const MinCreditScore = 700

const maxDTIPercent = 50

var (
	maxDTIRatio    = decimal.NewFromFloat(0.5)
	eligibleFactor = decimal.NewFromInt(2)
	hundred        = decimal.NewFromInt(100)
)

// UnderwritingInput carries one loan request. Nil pointers mean "not known".
type UnderwritingInput struct {
	LoanAmount        decimal.Decimal
	TenureMonths      int
	AnnualRatePercent decimal.Decimal
	CreditScore       *int
	PreApprovedLimit  *decimal.Decimal
	MonthlyNetSalary  *decimal.Decimal
}

// UnderwritingEngine evaluates loan requests and stamps each result with a
// reference number.
type UnderwritingEngine struct {
	refs *ReferenceGenerator
}

// NewUnderwritingEngine returns an engine drawing references from refs.
func NewUnderwritingEngine(refs *ReferenceGenerator) *UnderwritingEngine {
	return &UnderwritingEngine{refs: refs}
}

// Evaluate decides the request and assigns a fresh reference number,
// whatever the decision.
func (e *UnderwritingEngine) Evaluate(in UnderwritingInput) model.UnderwritingResult {
	result := Decide(in)
	result.ReferenceNumber = e.refs.Next()
	return result
}

// Decide applies the cascade; the first matching rule wins:
//
//  1. credit score known and below 700          -> REJECT
//  2. amount within the pre-approved limit       -> APPROVE
//  3. amount within 2x the limit, salary known   -> APPROVE iff EMI <= 50% of salary
//     amount within 2x the limit, salary unknown -> PENDING
//  4. anything else                              -> REJECT
//
// EMI and total are always computed from the requested terms.
func Decide(in UnderwritingInput) model.UnderwritingResult {
	emi := CalculateEMI(in.LoanAmount, in.AnnualRatePercent, in.TenureMonths)
	result := model.UnderwritingResult{
		EMI:         emi,
		TotalAmount: TotalAmount(emi, in.TenureMonths),
	}

	if in.CreditScore != nil && *in.CreditScore < MinCreditScore {
		result.Decision = valueobject.DecisionReject
		result.Reason = fmt.Sprintf("Credit score (%d) is below the minimum required threshold of %d.",
			*in.CreditScore, MinCreditScore)
		result.RequiredAction = "Please improve your credit score and reapply."
		return result
	}

	amount := inr(in.LoanAmount)
	if in.PreApprovedLimit != nil {
		limit := inr(*in.PreApprovedLimit)

		if amount.LessThanOrEqual(limit) {
			result.Decision = valueobject.DecisionApprove
			result.Reason = fmt.Sprintf("Loan amount (%s) is within your pre-approved limit (%s).", amount, limit)
			return result
		}

		ceiling := limit.Multiply(eligibleFactor)
		if amount.LessThanOrEqual(ceiling) {
			return decideOnIncome(result, in, limit)
		}

		result.Decision = valueobject.DecisionReject
		result.Reason = fmt.Sprintf("Requested amount (%s) exceeds the maximum eligible limit of %s.", amount, ceiling)
		result.RequiredAction = "Maximum eligible amount: " + ceiling.String()
		return result
	}

	result.Decision = valueobject.DecisionReject
	result.Reason = fmt.Sprintf("Requested amount (%s) cannot be assessed without a pre-approved limit.", amount)
	result.RequiredAction = "Please obtain a pre-approved offer before reapplying."
	return result
}

func decideOnIncome(result model.UnderwritingResult, in UnderwritingInput, limit money.Money) model.UnderwritingResult {
	if in.MonthlyNetSalary == nil || !inr(*in.MonthlyNetSalary).IsPositive() {
		result.Decision = valueobject.DecisionPending
		result.Reason = fmt.Sprintf("Amounts above your pre-approved limit (%s) require additional income verification.", limit)
		result.RequiredAction = "Please upload your latest salary slip."
		return result
	}

	salary := inr(*in.MonthlyNetSalary)
	emi := inr(result.EMI)
	percent := result.EMI.Div(salary.Amount()).Mul(hundred).StringFixed(1)

	if emi.LessThanOrEqual(salary.Multiply(maxDTIRatio)) {
		result.Decision = valueobject.DecisionApprove
		result.Reason = fmt.Sprintf("After salary verification, your EMI (%s) is %s%% of your monthly net salary, "+
			"within the acceptable limit of %d%%.", emi, percent, maxDTIPercent)
		return result
	}

	result.Decision = valueobject.DecisionReject
	result.Reason = fmt.Sprintf("EMI (%s) would be %s%% of your monthly net salary, exceeding the acceptable limit of %d%%.",
		emi, percent, maxDTIPercent)
	result.RequiredAction = "Consider a lower loan amount or longer tenure to reduce EMI."
	return result
}

func inr(d decimal.Decimal) money.Money {
	return money.New(d, money.INR)
}
