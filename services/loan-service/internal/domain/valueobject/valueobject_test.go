package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDecision(t *testing.T) {
	tests := []struct {
		input   string
		want    Decision
		wantErr bool
	}{
		{"APPROVE", DecisionApprove, false},
		{"REJECT", DecisionReject, false},
		{"PENDING", DecisionPending, false},
		{"approve", Decision{}, true},
		{"", Decision{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewDecision(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
			assert.Equal(t, tt.input, got.String())
		})
	}
	assert.True(t, Decision{}.IsZero())
	assert.False(t, DecisionReject.IsZero())
}

func TestNewKycStatus(t *testing.T) {
	for _, s := range []string{"VERIFIED", "PENDING", "FAILED"} {
		got, err := NewKycStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, got.String())
	}
	_, err := NewKycStatus("UNKNOWN")
	assert.Error(t, err)
	assert.False(t, KycStatusPending.Equal(KycStatusFailed))
}

func TestNewEmploymentType(t *testing.T) {
	got, err := NewEmploymentType("Self-Employed")
	require.NoError(t, err)
	assert.True(t, got.Equal(EmploymentSelfEmployed))

	got, err = NewEmploymentType("Salaried")
	require.NoError(t, err)
	assert.True(t, got.Equal(EmploymentSalaried))

	_, err = NewEmploymentType("SelfEmployed")
	assert.Error(t, err)
}

func TestNewCreditBand(t *testing.T) {
	for _, s := range []string{"excellent", "good", "fair", "poor"} {
		got, err := NewCreditBand(s)
		require.NoError(t, err)
		assert.Equal(t, s, got.String())
	}
	_, err := NewCreditBand("platinum")
	assert.Error(t, err)
}

func TestValueObjects_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Band       CreditBand     `json:"band"`
		Employment EmploymentType `json:"employment"`
	}{CreditBandGood, EmploymentSelfEmployed})
	require.NoError(t, err)
	assert.JSONEq(t, `{"band":"good","employment":"Self-Employed"}`, string(raw))
}

func TestNewRuleTypeAndOperator(t *testing.T) {
	for _, s := range []string{"credit_score_min", "amount_vs_preapproved", "emi_income_ratio",
		"age_restriction", "employment_type", "existing_loan_check"} {
		got, err := NewRuleType(s)
		require.NoError(t, err)
		assert.Equal(t, s, got.String())
	}
	_, err := NewRuleType("CREDIT_SCORE_MIN")
	assert.Error(t, err)
	assert.True(t, RuleType{}.IsZero())

	for _, s := range []string{"gt", "lt", "eq", "gte", "lte", "in"} {
		got, err := NewRuleOperator(s)
		require.NoError(t, err)
		assert.Equal(t, s, got.String())
	}
	_, err = NewRuleOperator(">=")
	assert.Error(t, err)

	assert.True(t, OpLessEqual.Ordered())
	assert.False(t, OpEqual.Ordered())
	assert.False(t, OpIn.Ordered())
}
