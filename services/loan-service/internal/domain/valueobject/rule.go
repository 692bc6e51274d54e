package valueobject

import "fmt"

// RuleType names the fact a business rule reads from the evaluation context.
type RuleType struct {
	value string
}

var (
	RuleCreditScoreMin      = RuleType{value: "credit_score_min"}
	RuleAmountVsPreApproved = RuleType{value: "amount_vs_preapproved"}
	RuleEMIIncomeRatio      = RuleType{value: "emi_income_ratio"}
	RuleAgeRestriction      = RuleType{value: "age_restriction"}
	RuleEmploymentType      = RuleType{value: "employment_type"}
	RuleExistingLoanCheck   = RuleType{value: "existing_loan_check"}
)

var ruleTypes = map[string]RuleType{
	RuleCreditScoreMin.value:      RuleCreditScoreMin,
	RuleAmountVsPreApproved.value: RuleAmountVsPreApproved,
	RuleEMIIncomeRatio.value:      RuleEMIIncomeRatio,
	RuleAgeRestriction.value:      RuleAgeRestriction,
	RuleEmploymentType.value:      RuleEmploymentType,
	RuleExistingLoanCheck.value:   RuleExistingLoanCheck,
}

// NewRuleType parses a snake_case rule type such as "credit_score_min".
func NewRuleType(s string) (RuleType, error) {
	t, ok := ruleTypes[s]
	if !ok {
		return RuleType{}, fmt.Errorf("invalid rule type: %q", s)
	}
	return t, nil
}

func (t RuleType) String() string { return t.value }

func (t RuleType) IsZero() bool { return t.value == "" }

// RuleOperator compares a fact against a rule threshold.
type RuleOperator struct {
	value string
}

var (
	OpGreaterThan  = RuleOperator{value: "gt"}
	OpLessThan     = RuleOperator{value: "lt"}
	OpEqual        = RuleOperator{value: "eq"}
	OpGreaterEqual = RuleOperator{value: "gte"}
	OpLessEqual    = RuleOperator{value: "lte"}
	OpIn           = RuleOperator{value: "in"}
)

var ruleOperators = map[string]RuleOperator{
	OpGreaterThan.value:  OpGreaterThan,
	OpLessThan.value:     OpLessThan,
	OpEqual.value:        OpEqual,
	OpGreaterEqual.value: OpGreaterEqual,
	OpLessEqual.value:    OpLessEqual,
	OpIn.value:           OpIn,
}

// NewRuleOperator parses gt, lt, eq, gte, lte or in.
func NewRuleOperator(s string) (RuleOperator, error) {
	op, ok := ruleOperators[s]
	if !ok {
		return RuleOperator{}, fmt.Errorf("invalid rule operator: %q", s)
	}
	return op, nil
}

func (o RuleOperator) String() string { return o.value }

// Ordered reports whether the operator needs a numeric or string ordering.
func (o RuleOperator) Ordered() bool {
	return o == OpGreaterThan || o == OpLessThan || o == OpGreaterEqual || o == OpLessEqual
}
