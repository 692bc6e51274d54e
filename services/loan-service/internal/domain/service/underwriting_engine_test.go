package service

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanflow/loanflow/pkg/testutil"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/valueobject"
)

func intPtr(v int) *int { return &v }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func request(amount int64) UnderwritingInput {
	return UnderwritingInput{
		LoanAmount:        decimal.NewFromInt(amount),
		TenureMonths:      24,
		AnnualRatePercent: decimal.NewFromInt(12),
	}
}

func TestDecide_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		score    *int
		limit    *decimal.Decimal
		salary   *decimal.Decimal
		amount   int64
		want     valueobject.Decision
		reason   string
		action   string
		noAction bool
	}{
		{
			name:   "credit below floor",
			score:  intPtr(650),
			limit:  decPtr(100000),
			amount: 50000,
			want:   valueobject.DecisionReject,
			reason: "Credit score (650) is below the minimum required threshold of 700.",
			action: "Please improve your credit score and reapply.",
		},
		{
			name:     "within pre-approved limit",
			score:    intPtr(750),
			limit:    decPtr(100000),
			amount:   80000,
			want:     valueobject.DecisionApprove,
			reason:   "Loan amount (₹80,000) is within your pre-approved limit (₹100,000).",
			noAction: true,
		},
		{
			name:     "within twice limit and affordable",
			score:    intPtr(750),
			limit:    decPtr(100000),
			salary:   decPtr(50000),
			amount:   150000,
			want:     valueobject.DecisionApprove,
			reason:   "After salary verification, your EMI (₹7,061) is 14.1% of your monthly net salary, within the acceptable limit of 50%.",
			noAction: true,
		},
		{
			name:   "within twice limit and unaffordable",
			score:  intPtr(750),
			limit:  decPtr(100000),
			salary: decPtr(10000),
			amount: 150000,
			want:   valueobject.DecisionReject,
			reason: "EMI (₹7,061) would be 70.6% of your monthly net salary, exceeding the acceptable limit of 50%.",
			action: "Consider a lower loan amount or longer tenure to reduce EMI.",
		},
		{
			name:   "within twice limit without salary",
			score:  intPtr(750),
			limit:  decPtr(100000),
			amount: 150000,
			want:   valueobject.DecisionPending,
			action: "Please upload your latest salary slip.",
		},
		{
			name:   "beyond twice limit",
			score:  intPtr(750),
			limit:  decPtr(100000),
			amount: 250000,
			want:   valueobject.DecisionReject,
			reason: "Requested amount (₹250,000) exceeds the maximum eligible limit of ₹200,000.",
			action: "Maximum eligible amount: ₹200,000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := request(tt.amount)
			in.CreditScore = tt.score
			in.PreApprovedLimit = tt.limit
			in.MonthlyNetSalary = tt.salary

			got := Decide(in)
			assert.True(t, got.Decision.Equal(tt.want), "decision = %s", got.Decision)
			if tt.reason != "" {
				assert.Equal(t, tt.reason, got.Reason)
			}
			assert.NotEmpty(t, got.Reason)
			if tt.noAction {
				assert.Empty(t, got.RequiredAction)
			} else {
				assert.Equal(t, tt.action, got.RequiredAction)
			}
			assert.Empty(t, got.ReferenceNumber, "Decide does not assign references")
		})
	}
}

func TestDecide_CreditFloorWinsRegardlessOfTerms(t *testing.T) {
	for _, amount := range []int64{1000, 100000, 10000000} {
		in := request(amount)
		in.CreditScore = intPtr(699)
		in.PreApprovedLimit = decPtr(10000000)
		in.MonthlyNetSalary = decPtr(1000000)
		assert.True(t, Decide(in).Decision.Equal(valueobject.DecisionReject))
	}
}

func TestDecide_AbsentCreditScoreSkipsFloor(t *testing.T) {
	in := request(80000)
	in.PreApprovedLimit = decPtr(100000)
	assert.True(t, Decide(in).Decision.Equal(valueobject.DecisionApprove))
}

func TestDecide_BoundaryAmounts(t *testing.T) {
	in := request(100000)
	in.PreApprovedLimit = decPtr(100000)
	assert.True(t, Decide(in).Decision.Equal(valueobject.DecisionApprove), "amount equal to limit approves")

	in = request(200000)
	in.PreApprovedLimit = decPtr(100000)
	assert.True(t, Decide(in).Decision.Equal(valueobject.DecisionPending), "amount equal to 2x limit is income-gated")

	in = request(200001)
	in.PreApprovedLimit = decPtr(100000)
	assert.True(t, Decide(in).Decision.Equal(valueobject.DecisionReject))
}

func TestDecide_DTIBoundaryApproves(t *testing.T) {
	// EMI for 150000 at 12% over 24 months is 7061; half of 14122 is 7061.
	in := request(150000)
	in.PreApprovedLimit = decPtr(100000)
	in.MonthlyNetSalary = decPtr(14122)
	assert.True(t, Decide(in).Decision.Equal(valueobject.DecisionApprove))

	in.MonthlyNetSalary = decPtr(14121)
	assert.True(t, Decide(in).Decision.Equal(valueobject.DecisionReject))
}

func TestDecide_NoLimitRejectsWithoutCeiling(t *testing.T) {
	in := request(50000)
	in.CreditScore = intPtr(800)

	got := Decide(in)
	assert.True(t, got.Decision.Equal(valueobject.DecisionReject))
	assert.NotContains(t, got.Reason, "₹0")
	assert.Contains(t, got.Reason, "₹50,000")
	assert.NotEmpty(t, got.RequiredAction)
}

func TestDecide_EMIComputedForEveryBranch(t *testing.T) {
	in := request(150000)
	in.CreditScore = intPtr(500)

	got := Decide(in)
	assert.True(t, got.EMI.Equal(decimal.NewFromInt(7061)))
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(7061*24)))
}

func TestUnderwritingEngine_EvaluateAssignsDistinctReferences(t *testing.T) {
	engine := NewUnderwritingEngine(NewReferenceGenerator(UnderwritingPrefix, testutil.FixedClock()))

	in := request(50000)
	in.CreditScore = intPtr(600)

	first := engine.Evaluate(in)
	second := engine.Evaluate(in)

	require.NotEmpty(t, first.ReferenceNumber)
	assert.True(t, strings.HasPrefix(first.ReferenceNumber, "UW"))
	assert.NotEqual(t, first.ReferenceNumber, second.ReferenceNumber)
	assert.True(t, first.Decision.Equal(valueobject.DecisionReject), "rejections still get a reference")
}
