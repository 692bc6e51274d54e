package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanflow/loanflow/services/loan-service/internal/application/dto"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/event"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/port"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/service"
)

// Salary sources recorded in the audit metadata.
const (
	salaryFromRequest = "request"
	salaryFromProfile = "profile"
	salaryUnknown     = "unknown"
)

// EvaluateUnderwritingUseCase runs the underwriting cascade and records the
// decision.
type EvaluateUnderwritingUseCase struct {
	customers port.CustomerRepository
	recorder  port.DecisionRecorder
	metrics   port.DecisionMetrics
	engine    *service.UnderwritingEngine
	logger    *slog.Logger
}

// NewEvaluateUnderwritingUseCase wires dependencies.
func NewEvaluateUnderwritingUseCase(
	customers port.CustomerRepository,
	recorder port.DecisionRecorder,
	metrics port.DecisionMetrics,
	engine *service.UnderwritingEngine,
	logger *slog.Logger,
) *EvaluateUnderwritingUseCase {
	return &EvaluateUnderwritingUseCase{
		customers: customers,
		recorder:  recorder,
		metrics:   metrics,
		engine:    engine,
		logger:    logger,
	}
}

// Execute evaluates the request. The monthly net salary is taken from the
// customer profile when the request omits it; credit score and pre-approved
// limit are used exactly as supplied. Every call appends one
// UNDERWRITING_DECISION entry.
func (uc *EvaluateUnderwritingUseCase) Execute(
	ctx context.Context,
	req dto.EvaluateUnderwritingRequest,
) (dto.UnderwritingResponse, error) {
	salary, salarySource, err := uc.resolveSalary(ctx, req)
	if err != nil {
		return dto.UnderwritingResponse{}, err
	}

	in := service.UnderwritingInput{
		LoanAmount:        req.LoanAmount,
		TenureMonths:      req.TenureMonths,
		AnnualRatePercent: req.AnnualRatePercent,
		CreditScore:       req.CreditScore,
		PreApprovedLimit:  req.PreApprovedLimit,
		MonthlyNetSalary:  salary,
	}
	result := uc.engine.Evaluate(in)
	score := service.ScoreApplication(
		valueOrZero(req.CreditScore), decimalOrZero(salary), decimalOrZero(req.PreApprovedLimit), req.LoanAmount,
	)

	now := time.Now().UTC()
	entry, err := model.NewAuditLogEntry(
		req.CustomerID,
		model.ActionUnderwritingDecision,
		result.Decision,
		result.Reason,
		map[string]any{
			"engine":            "UnderwritingEngine",
			"referenceNumber":   result.ReferenceNumber,
			"loanAmount":        req.LoanAmount.String(),
			"tenureMonths":      req.TenureMonths,
			"annualRatePercent": req.AnnualRatePercent.String(),
			"emi":               result.EMI.String(),
			"totalAmount":       result.TotalAmount.String(),
			"salarySource":      salarySource,
			"applicationScore":  score.Score,
			"scoreFactors": map[string]any{
				"credit":      score.Credit,
				"income":      score.Income,
				"loanToLimit": score.LoanToLimit,
			},
		},
		now,
	)
	if err != nil {
		return dto.UnderwritingResponse{}, fmt.Errorf("build audit entry: %w", err)
	}
	decided := event.NewUnderwritingDecided(
		result.ReferenceNumber, req.CustomerID, result.Decision.String(),
		req.LoanAmount, result.EMI, result.TotalAmount, now,
	)
	if _, err := uc.recorder.Record(ctx, entry, decided); err != nil {
		return dto.UnderwritingResponse{}, fmt.Errorf("record underwriting decision: %w", err)
	}
	uc.metrics.RecordUnderwriting(ctx, result.Decision.String())

	uc.logger.InfoContext(ctx, "underwriting decision recorded",
		"customer_id", req.CustomerID,
		"reference_number", result.ReferenceNumber,
		"decision", result.Decision.String(),
		"application_score", score.Score,
	)

	return dto.UnderwritingResponse{
		Decision:        result.Decision.String(),
		Reason:          result.Reason,
		RequiredAction:  result.RequiredAction,
		EMI:             result.EMI,
		TotalAmount:     result.TotalAmount,
		ReferenceNumber: result.ReferenceNumber,
	}, nil
}

func (uc *EvaluateUnderwritingUseCase) resolveSalary(
	ctx context.Context,
	req dto.EvaluateUnderwritingRequest,
) (*decimal.Decimal, string, error) {
	if req.MonthlyNetSalary != nil {
		return req.MonthlyNetSalary, salaryFromRequest, nil
	}

	customer, found, err := uc.customers.FindCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("find customer: %w", err)
	}
	if !found {
		return nil, salaryUnknown, nil
	}
	salary := customer.MonthlyNetSalary
	return &salary, salaryFromProfile, nil
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func decimalOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}
