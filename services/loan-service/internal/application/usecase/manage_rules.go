package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/loanflow/loanflow/services/loan-service/internal/application/dto"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/port"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/service"
)

// ManageRulesUseCase lists and edits the configurable business rules.
type ManageRulesUseCase struct {
	rules  port.RuleRepository
	logger *slog.Logger
}

// NewManageRulesUseCase wires dependencies.
func NewManageRulesUseCase(rules port.RuleRepository, logger *slog.Logger) *ManageRulesUseCase {
	return &ManageRulesUseCase{rules: rules, logger: logger}
}

// List returns the rules in evaluation order.
func (uc *ManageRulesUseCase) List(ctx context.Context) (dto.RulesResponse, error) {
	rules, err := uc.rules.List(ctx)
	if err != nil {
		return dto.RulesResponse{}, fmt.Errorf("list rules: %w", err)
	}
	out := make([]dto.RuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, dto.FromBusinessRule(r))
	}
	return dto.RulesResponse{Rules: out}, nil
}

// Create adds a rule. A duplicate name yields ErrRuleExists.
func (uc *ManageRulesUseCase) Create(ctx context.Context, req dto.RuleRequest) (dto.RuleResponse, error) {
	rule, err := req.ToRule()
	if err != nil {
		return dto.RuleResponse{}, err
	}
	if err := uc.rules.Create(ctx, rule); err != nil {
		return dto.RuleResponse{}, fmt.Errorf("create rule: %w", err)
	}
	uc.logger.InfoContext(ctx, "business rule created", "rule", rule.Name, "priority", rule.Priority)
	return dto.FromBusinessRule(rule), nil
}

// Update patches the named rule. An unknown name yields ErrRuleNotFound.
func (uc *ManageRulesUseCase) Update(ctx context.Context, name string, req dto.RuleUpdateRequest) (dto.RuleResponse, error) {
	updated, err := uc.rules.Update(ctx, name, req.Apply)
	if err != nil {
		return dto.RuleResponse{}, fmt.Errorf("update rule %s: %w", name, err)
	}
	uc.logger.InfoContext(ctx, "business rule updated", "rule", name, "name", updated.Name)
	return dto.FromBusinessRule(updated), nil
}

// Delete removes the named rule. An unknown name yields ErrRuleNotFound.
func (uc *ManageRulesUseCase) Delete(ctx context.Context, name string) error {
	if err := uc.rules.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete rule %s: %w", name, err)
	}
	uc.logger.InfoContext(ctx, "business rule deleted", "rule", name)
	return nil
}

// EvaluateRulesUseCase runs the current rule set against caller facts.
type EvaluateRulesUseCase struct {
	rules    port.RuleRepository
	recorder port.DecisionRecorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewEvaluateRulesUseCase wires dependencies.
func NewEvaluateRulesUseCase(
	rules port.RuleRepository,
	recorder port.DecisionRecorder,
	logger *slog.Logger,
) *EvaluateRulesUseCase {
	return &EvaluateRulesUseCase{
		rules:    rules,
		recorder: recorder,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Execute evaluates the facts. A RULES_EVALUATION audit entry is appended
// only when the request names a customer.
func (uc *EvaluateRulesUseCase) Execute(ctx context.Context, req dto.EvaluateRulesRequest) (dto.RuleEvaluationResponse, error) {
	facts := make(map[string]any, len(req.Facts))
	for key, value := range req.Facts {
		normalized, err := model.NormalizeRuleValue(value)
		if err != nil {
			return dto.RuleEvaluationResponse{}, fmt.Errorf("%w: fact %s: %v", model.ErrInvalidRequest, key, err)
		}
		facts[key] = normalized
	}

	rules, err := uc.rules.List(ctx)
	if err != nil {
		return dto.RuleEvaluationResponse{}, fmt.Errorf("list rules: %w", err)
	}
	result := service.EvaluateRules(rules, facts)
	now := uc.now()

	if customerID := strings.TrimSpace(req.CustomerID); customerID != "" {
		entry, err := model.NewAuditLogEntry(
			customerID,
			model.ActionRulesEvaluation,
			result.Decision,
			result.Reason,
			map[string]any{
				"engine":     "RulesEngine",
				"approvals":  result.Approvals,
				"rejections": result.Rejections,
				"ruleCount":  len(rules),
			},
			now,
		)
		if err != nil {
			return dto.RuleEvaluationResponse{}, fmt.Errorf("build audit entry: %w", err)
		}
		if _, err := uc.recorder.Record(ctx, entry); err != nil {
			return dto.RuleEvaluationResponse{}, fmt.Errorf("record rules evaluation: %w", err)
		}
	}

	uc.logger.InfoContext(ctx, "rules evaluated",
		"customer_id", req.CustomerID,
		"decision", result.Decision.String(),
		"approvals", len(result.Approvals),
		"rejections", len(result.Rejections),
	)
	return dto.FromRuleEvaluation(result, now), nil
}

// ListLoanProductsUseCase serves the partner-bank product catalog.
type ListLoanProductsUseCase struct {
	catalog port.ProductCatalog
}

// NewListLoanProductsUseCase wires dependencies.
func NewListLoanProductsUseCase(catalog port.ProductCatalog) *ListLoanProductsUseCase {
	return &ListLoanProductsUseCase{catalog: catalog}
}

// Execute returns the products passing filter, in catalog order; never nil.
func (uc *ListLoanProductsUseCase) Execute(ctx context.Context, filter dto.ProductFilter) ([]dto.LoanProductResponse, error) {
	products, err := uc.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]dto.LoanProductResponse, 0, len(products))
	for _, p := range products {
		if filter.Matches(p) {
			out = append(out, dto.FromLoanProduct(p))
		}
	}
	return out, nil
}
