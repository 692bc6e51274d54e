package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/port"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/service"
)

var _ port.RuleRepository = (*RuleRepository)(nil)

// RuleRepository keeps the business rules sorted by descending priority.
type RuleRepository struct {
	mu    sync.RWMutex
	rules []model.BusinessRule
}

// NewRuleRepository returns a repository holding rules, sorted by priority.
func NewRuleRepository(rules ...model.BusinessRule) *RuleRepository {
	r := &RuleRepository{rules: slices.Clone(rules)}
	service.SortRules(r.rules)
	return r
}

// NewSeededRuleRepository starts from the default approval rules.
func NewSeededRuleRepository() *RuleRepository {
	return NewRuleRepository(service.DefaultRules()...)
}

func (r *RuleRepository) List(_ context.Context) ([]model.BusinessRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.rules), nil
}

func (r *RuleRepository) Create(_ context.Context, rule model.BusinessRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(rule.Name) >= 0 {
		return fmt.Errorf("%w: %s", model.ErrRuleExists, rule.Name)
	}
	r.rules = append(r.rules, rule)
	service.SortRules(r.rules)
	return nil
}

func (r *RuleRepository) Update(
	_ context.Context,
	name string,
	fn func(model.BusinessRule) (model.BusinessRule, error),
) (model.BusinessRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(name)
	if i < 0 {
		return model.BusinessRule{}, fmt.Errorf("%w: %s", model.ErrRuleNotFound, name)
	}
	updated, err := fn(r.rules[i])
	if err != nil {
		return model.BusinessRule{}, err
	}
	if updated.Name != name && r.indexOf(updated.Name) >= 0 {
		return model.BusinessRule{}, fmt.Errorf("%w: %s", model.ErrRuleExists, updated.Name)
	}
	r.rules[i] = updated
	service.SortRules(r.rules)
	return updated, nil
}

func (r *RuleRepository) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", model.ErrRuleNotFound, name)
	}
	r.rules = slices.Delete(r.rules, i, i+1)
	return nil
}

func (r *RuleRepository) indexOf(name string) int {
	return slices.IndexFunc(r.rules, func(rule model.BusinessRule) bool { return rule.Name == name })
}
