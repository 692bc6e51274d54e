package service

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/valueobject"
)

// DefaultRules is the rule set a fresh rule store starts with.
func DefaultRules() []model.BusinessRule {
	return []model.BusinessRule{
		{
			Name:        "Min Credit Score",
			Type:        valueobject.RuleCreditScoreMin,
			Operator:    valueobject.OpGreaterEqual,
			Threshold:   decimal.NewFromInt(MinCreditScore),
			Action:      valueobject.DecisionApprove,
			Priority:    100,
			Description: "Credit score must be at least 700",
			Enabled:     true,
		},
		{
			Name:        "EMI Income Ratio",
			Type:        valueobject.RuleEMIIncomeRatio,
			Operator:    valueobject.OpLessEqual,
			Threshold:   decimal.NewFromInt(maxDTIPercent),
			Action:      valueobject.DecisionApprove,
			Priority:    90,
			Description: "EMI should not exceed 50% of monthly income",
			Enabled:     true,
		},
		{
			Name:        "Existing Loan Check",
			Type:        valueobject.RuleExistingLoanCheck,
			Operator:    valueobject.OpEqual,
			Threshold:   "no",
			Action:      valueobject.DecisionApprove,
			Priority:    80,
			Description: "Prefer customers with no existing loans",
			Enabled:     true,
		},
	}
}

// SortRules orders rules by descending priority. Equal priorities keep their
// insertion order.
func SortRules(rules []model.BusinessRule) {
	slices.SortStableFunc(rules, func(a, b model.BusinessRule) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
}

// EvaluateRules runs every enabled rule against facts, keyed by rule type.
// Rules whose fact is absent are skipped. Any fired REJECT rule rejects;
// otherwise any fired APPROVE rule approves; otherwise the result is PENDING.
func EvaluateRules(rules []model.BusinessRule, facts map[string]any) model.RuleEvaluation {
	var approvals, rejections []string
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		fact, ok := facts[rule.Type.String()]
		if !ok || fact == nil || !RuleMatches(rule, fact) {
			continue
		}
		if rule.Action.Equal(valueobject.DecisionReject) {
			rejections = append(rejections, rule.Name)
		} else if rule.Action.Equal(valueobject.DecisionApprove) {
			approvals = append(approvals, rule.Name)
		}
	}

	switch {
	case len(rejections) > 0:
		return model.RuleEvaluation{
			Decision:   valueobject.DecisionReject,
			Reason:     "Failed rules: " + strings.Join(rejections, ", "),
			Approvals:  approvals,
			Rejections: rejections,
		}
	case len(approvals) > 0:
		return model.RuleEvaluation{
			Decision:  valueobject.DecisionApprove,
			Reason:    "Passed rules: " + strings.Join(approvals, ", "),
			Approvals: approvals,
		}
	default:
		return model.RuleEvaluation{
			Decision: valueobject.DecisionPending,
			Reason:   "Insufficient data to evaluate",
		}
	}
}

// RuleMatches reports whether fact satisfies the rule's condition. Values of
// different kinds never match.
func RuleMatches(rule model.BusinessRule, fact any) bool {
	value, err := model.NormalizeRuleValue(fact)
	if err != nil {
		return false
	}
	if _, isList := value.([]any); isList {
		return false
	}

	switch rule.Operator {
	case valueobject.OpEqual:
		return ruleValuesEqual(value, rule.Threshold)
	case valueobject.OpIn:
		candidates, _ := rule.Threshold.([]any)
		return slices.ContainsFunc(candidates, func(c any) bool { return ruleValuesEqual(value, c) })
	}

	c, ok := compareRuleValues(value, rule.Threshold)
	if !ok {
		return false
	}
	switch rule.Operator {
	case valueobject.OpGreaterThan:
		return c > 0
	case valueobject.OpLessThan:
		return c < 0
	case valueobject.OpGreaterEqual:
		return c >= 0
	case valueobject.OpLessEqual:
		return c <= 0
	default:
		return false
	}
}

func ruleValuesEqual(a, b any) bool {
	switch x := a.(type) {
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		return ok && x.Equal(y)
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	default:
		return false
	}
}

func compareRuleValues(a, b any) (int, bool) {
	switch x := a.(type) {
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		if !ok {
			return 0, false
		}
		return x.Cmp(y), true
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	default:
		return 0, false
	}
}
