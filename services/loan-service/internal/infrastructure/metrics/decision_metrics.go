package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/port"
)

const meterName = "github.com/loanflow/loanflow/services/loan-service"

var _ port.DecisionMetrics = (*DecisionMetrics)(nil)

// DecisionMetrics counts underwriting and KYC outcomes on an OTel meter.
type DecisionMetrics struct {
	underwriting metric.Int64Counter
	kyc          metric.Int64Counter
}

// NewDecisionMetrics registers the decision counters on provider.
func NewDecisionMetrics(provider metric.MeterProvider) (*DecisionMetrics, error) {
	meter := provider.Meter(meterName)

	underwriting, err := meter.Int64Counter("loan_underwriting_decisions_total",
		metric.WithDescription("Underwriting evaluations by decision"),
	)
	if err != nil {
		return nil, fmt.Errorf("underwriting counter: %w", err)
	}
	kyc, err := meter.Int64Counter("loan_kyc_verifications_total",
		metric.WithDescription("KYC verifications by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("kyc counter: %w", err)
	}

	return &DecisionMetrics{underwriting: underwriting, kyc: kyc}, nil
}

func (m *DecisionMetrics) RecordUnderwriting(ctx context.Context, decision string) {
	m.underwriting.Add(ctx, 1, metric.WithAttributes(attribute.String("decision", decision)))
}

func (m *DecisionMetrics) RecordKyc(ctx context.Context, status string) {
	m.kyc.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}
