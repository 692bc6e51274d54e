package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/loanflow/loanflow/services/loan-service/internal/application/dto"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/event"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/port"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/service"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/valueobject"
)

// VerifyKycUseCase checks submitted identity fields against the CRM record
// and records the outcome.
type VerifyKycUseCase struct {
	customers port.CustomerRepository
	recorder  port.DecisionRecorder
	metrics   port.DecisionMetrics
	verifier  *service.KycVerifier
	logger    *slog.Logger
}

// NewVerifyKycUseCase wires dependencies.
func NewVerifyKycUseCase(
	customers port.CustomerRepository,
	recorder port.DecisionRecorder,
	metrics port.DecisionMetrics,
	verifier *service.KycVerifier,
	logger *slog.Logger,
) *VerifyKycUseCase {
	return &VerifyKycUseCase{
		customers: customers,
		recorder:  recorder,
		metrics:   metrics,
		verifier:  verifier,
		logger:    logger,
	}
}

// Execute verifies the request. A missing CRM record yields FAILED and writes
// no audit entry; otherwise exactly one KYC_VERIFICATION entry is appended.
func (uc *VerifyKycUseCase) Execute(ctx context.Context, req dto.VerifyKycRequest) (dto.KycVerificationResponse, error) {
	record, found, err := uc.customers.FindCrmRecord(ctx, req.CustomerID)
	if err != nil {
		return dto.KycVerificationResponse{}, fmt.Errorf("find CRM record: %w", err)
	}
	if !found {
		result := model.KycCustomerNotFound()
		uc.metrics.RecordKyc(ctx, result.Status.String())
		uc.logger.InfoContext(ctx, "kyc verification failed: no CRM record", "customer_id", req.CustomerID)
		return toKycResponse(result), nil
	}

	result := uc.verifier.Verify(record, service.KycSubmission{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})

	now := time.Now().UTC()
	entry, err := model.NewAuditLogEntry(
		req.CustomerID,
		model.ActionKycVerification,
		valueobject.Decision{},
		kycSummary(result),
		map[string]any{
			"mismatches":      result.Mismatches,
			"providedName":    req.Name,
			"providedPhone":   req.Phone,
			"providedAddress": req.Address,
		},
		now,
	)
	if err != nil {
		return dto.KycVerificationResponse{}, fmt.Errorf("build audit entry: %w", err)
	}
	verified := event.NewKycVerified(req.CustomerID, result.Status.String(), len(result.Mismatches), now)
	if _, err := uc.recorder.Record(ctx, entry, verified); err != nil {
		return dto.KycVerificationResponse{}, fmt.Errorf("record kyc verification: %w", err)
	}
	uc.metrics.RecordKyc(ctx, result.Status.String())

	uc.logger.InfoContext(ctx, "kyc verification completed",
		"customer_id", req.CustomerID,
		"status", result.Status.String(),
		"mismatches", len(result.Mismatches),
	)
	return toKycResponse(result), nil
}

func kycSummary(result model.KycVerificationResult) string {
	if len(result.Mismatches) == 0 {
		return "All details verified"
	}
	return fmt.Sprintf("Mismatches found: %d", len(result.Mismatches))
}

func toKycResponse(result model.KycVerificationResult) dto.KycVerificationResponse {
	return dto.KycVerificationResponse{
		Status:     result.Status.String(),
		Mismatches: result.Mismatches,
	}
}
