package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/valueobject"
)

// RuleRequest creates a business rule. Priority defaults to 100 and Enabled
// to true when omitted.
type RuleRequest struct {
	Name        string `json:"name"`
	RuleType    string `json:"rule_type"`
	Operator    string `json:"operator"`
	Threshold   any    `json:"threshold"`
	Action      string `json:"action"`
	Priority    *int   `json:"priority,omitempty"`
	Description string `json:"description,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`
}

// ToRule parses and validates the request.
func (r RuleRequest) ToRule() (model.BusinessRule, error) {
	rule := model.BusinessRule{
		Name:        r.Name,
		Threshold:   r.Threshold,
		Priority:    model.DefaultRulePriority,
		Description: r.Description,
		Enabled:     true,
	}
	if r.Priority != nil {
		rule.Priority = *r.Priority
	}
	if r.Enabled != nil {
		rule.Enabled = *r.Enabled
	}

	var err error
	if rule.Type, err = valueobject.NewRuleType(r.RuleType); err != nil {
		return model.BusinessRule{}, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
	}
	if rule.Operator, err = valueobject.NewRuleOperator(r.Operator); err != nil {
		return model.BusinessRule{}, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
	}
	if rule.Action, err = valueobject.NewDecision(r.Action); err != nil {
		return model.BusinessRule{}, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
	}
	return validatedRule(rule)
}

// RuleUpdateRequest patches a business rule. Nil fields are left unchanged.
type RuleUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	RuleType    *string `json:"rule_type,omitempty"`
	Operator    *string `json:"operator,omitempty"`
	Threshold   any     `json:"threshold,omitempty"`
	Action      *string `json:"action,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
	Description *string `json:"description,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`
}

// Apply returns rule with the requested changes, validated as a whole.
func (u RuleUpdateRequest) Apply(rule model.BusinessRule) (model.BusinessRule, error) {
	var err error
	if u.Name != nil {
		rule.Name = *u.Name
	}
	if u.RuleType != nil {
		if rule.Type, err = valueobject.NewRuleType(*u.RuleType); err != nil {
			return model.BusinessRule{}, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
		}
	}
	if u.Operator != nil {
		if rule.Operator, err = valueobject.NewRuleOperator(*u.Operator); err != nil {
			return model.BusinessRule{}, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
		}
	}
	if u.Threshold != nil {
		rule.Threshold = u.Threshold
	}
	if u.Action != nil {
		if rule.Action, err = valueobject.NewDecision(*u.Action); err != nil {
			return model.BusinessRule{}, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
		}
	}
	if u.Priority != nil {
		rule.Priority = *u.Priority
	}
	if u.Description != nil {
		rule.Description = *u.Description
	}
	if u.Enabled != nil {
		rule.Enabled = *u.Enabled
	}
	return validatedRule(rule)
}

func validatedRule(rule model.BusinessRule) (model.BusinessRule, error) {
	valid, err := rule.Validated()
	if err != nil {
		return model.BusinessRule{}, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
	}
	return valid, nil
}

// EvaluateRulesRequest carries facts keyed by rule type, for example
// {"credit_score_min": 742}. CustomerID is optional and only used for the
// audit trail.
type EvaluateRulesRequest struct {
	CustomerID string         `json:"customer_id,omitempty"`
	Facts      map[string]any `json:"facts"`
}

// RuleResponse is the external representation of a business rule.
type RuleResponse struct {
	Name        string `json:"name"`
	RuleType    string `json:"rule_type"`
	Operator    string `json:"operator"`
	Threshold   any    `json:"threshold"`
	Action      string `json:"action"`
	Priority    int    `json:"priority"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// RulesResponse lists rules in evaluation order.
type RulesResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// RuleEvaluationResponse is the aggregate rules decision.
type RuleEvaluationResponse struct {
	Decision   string    `json:"decision"`
	Reason     string    `json:"reason"`
	Approvals  []string  `json:"approvals"`
	Rejections []string  `json:"rejections"`
	Timestamp  time.Time `json:"timestamp"`
}

// FromBusinessRule maps a rule. Decimal thresholds are emitted as JSON
// numbers.
func FromBusinessRule(r model.BusinessRule) RuleResponse {
	return RuleResponse{
		Name:        r.Name,
		RuleType:    r.Type.String(),
		Operator:    r.Operator.String(),
		Threshold:   thresholdJSON(r.Threshold),
		Action:      r.Action.String(),
		Priority:    r.Priority,
		Description: r.Description,
		Enabled:     r.Enabled,
	}
}

// FromRuleEvaluation maps an evaluation, never returning nil name lists.
func FromRuleEvaluation(e model.RuleEvaluation, at time.Time) RuleEvaluationResponse {
	resp := RuleEvaluationResponse{
		Decision:   e.Decision.String(),
		Reason:     e.Reason,
		Approvals:  e.Approvals,
		Rejections: e.Rejections,
		Timestamp:  at,
	}
	if resp.Approvals == nil {
		resp.Approvals = []string{}
	}
	if resp.Rejections == nil {
		resp.Rejections = []string{}
	}
	return resp
}

func thresholdJSON(v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		return json.Number(x.String())
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = thresholdJSON(item)
		}
		return out
	default:
		return v
	}
}
