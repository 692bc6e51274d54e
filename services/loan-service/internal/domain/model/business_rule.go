package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/valueobject"
)

// DefaultRulePriority applies when a rule is created without one.
const DefaultRulePriority = 100

// BusinessRule is one configurable approval condition. Rules with a higher
// Priority are evaluated first; Action is APPROVE or REJECT.
type BusinessRule struct {
	Name        string
	Type        valueobject.RuleType
	Operator    valueobject.RuleOperator
	Threshold   any
	Action      valueobject.Decision
	Priority    int
	Description string
	Enabled     bool
}

// Validated checks the rule and returns a copy whose threshold has been
// normalised with NormalizeRuleValue.
func (r BusinessRule) Validated() (BusinessRule, error) {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return BusinessRule{}, errors.New("rule name is required")
	}
	if r.Type.IsZero() {
		return BusinessRule{}, errors.New("rule type is required")
	}
	if !r.Action.Equal(valueobject.DecisionApprove) && !r.Action.Equal(valueobject.DecisionReject) {
		return BusinessRule{}, fmt.Errorf("rule action must be APPROVE or REJECT, got %q", r.Action.String())
	}

	threshold, err := NormalizeRuleValue(r.Threshold)
	if err != nil {
		return BusinessRule{}, fmt.Errorf("rule threshold: %w", err)
	}
	_, isList := threshold.([]any)
	switch {
	case r.Operator == valueobject.OpIn:
		if !isList {
			return BusinessRule{}, errors.New(`operator "in" needs a list threshold`)
		}
	case isList:
		return BusinessRule{}, fmt.Errorf("operator %q needs a single threshold value", r.Operator.String())
	case r.Operator.Ordered():
		if _, isBool := threshold.(bool); isBool {
			return BusinessRule{}, fmt.Errorf("operator %q cannot order booleans", r.Operator.String())
		}
	case r.Operator == valueobject.OpEqual:
	default:
		return BusinessRule{}, errors.New("rule operator is required")
	}
	r.Threshold = threshold
	return r, nil
}

// NormalizeRuleValue maps a fact or threshold onto decimal.Decimal, string,
// bool or []any of those. JSON numbers arrive as float64 or json.Number.
func NormalizeRuleValue(v any) (any, error) {
	switch x := v.(type) {
	case decimal.Decimal, string, bool:
		return x, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, errors.New("number is not finite")
		}
		return decimal.NewFromFloat(x), nil
	case float32:
		return NormalizeRuleValue(float64(x))
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case int32:
		return decimal.NewFromInt32(x), nil
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", x.String())
		}
		return d, nil
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			n, err := NormalizeRuleValue(item)
			if err != nil {
				return nil, err
			}
			if _, nested := n.([]any); nested {
				return nil, errors.New("nested lists are not supported")
			}
			out[i] = n
		}
		return out, nil
	case nil:
		return nil, errors.New("value is required")
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// RuleEvaluation is the aggregate outcome of running every enabled rule.
// Approvals and Rejections list the names of the rules that fired.
type RuleEvaluation struct {
	Decision   valueobject.Decision
	Reason     string
	Approvals  []string
	Rejections []string
}
