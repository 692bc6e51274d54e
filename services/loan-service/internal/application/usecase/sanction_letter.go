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

// GenerateSanctionLetterUseCase issues a sanction letter for agreed terms.
type GenerateSanctionLetterUseCase struct {
	letters  port.SanctionLetterRepository
	recorder port.DecisionRecorder
	refs     *service.ReferenceGenerator
	logger   *slog.Logger
}

// NewGenerateSanctionLetterUseCase wires dependencies.
func NewGenerateSanctionLetterUseCase(
	letters port.SanctionLetterRepository,
	recorder port.DecisionRecorder,
	refs *service.ReferenceGenerator,
	logger *slog.Logger,
) *GenerateSanctionLetterUseCase {
	return &GenerateSanctionLetterUseCase{
		letters:  letters,
		recorder: recorder,
		refs:     refs,
		logger:   logger,
	}
}

// Execute stores the letter, appends a SANCTION_LETTER_GENERATED audit entry
// and publishes SanctionLetterGenerated.
func (uc *GenerateSanctionLetterUseCase) Execute(
	ctx context.Context,
	req dto.GenerateSanctionLetterRequest,
) (dto.SanctionLetterResponse, error) {
	now := time.Now().UTC()
	ref := uc.refs.Next()
	emi := service.CalculateEMI(req.Amount, req.AnnualRatePercent, req.TenureMonths)

	letter, err := model.NewSanctionLetter(
		ref, req.CustomerID, req.Amount, req.TenureMonths, req.AnnualRatePercent, emi, req.Signatory, now,
	)
	if err != nil {
		return dto.SanctionLetterResponse{}, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
	}

	if err := uc.letters.Save(ctx, letter); err != nil {
		return dto.SanctionLetterResponse{}, fmt.Errorf("save sanction letter: %w", err)
	}

	entry, err := model.NewAuditLogEntry(
		req.CustomerID,
		model.ActionSanctionLetterGenerated,
		valueobject.Decision{},
		"Sanction letter generated with reference "+ref,
		map[string]any{
			"referenceNumber": ref,
			"signatory":       req.Signatory,
			"loanTerms": map[string]any{
				"amount":            req.Amount.String(),
				"tenureMonths":      req.TenureMonths,
				"annualRatePercent": req.AnnualRatePercent.String(),
				"emi":               emi.String(),
			},
		},
		now,
	)
	if err != nil {
		return dto.SanctionLetterResponse{}, fmt.Errorf("build audit entry: %w", err)
	}
	generated := event.NewSanctionLetterGenerated(ref, req.CustomerID, req.Amount, req.TenureMonths, now)
	if _, err := uc.recorder.Record(ctx, entry, generated); err != nil {
		return dto.SanctionLetterResponse{}, fmt.Errorf("record sanction letter: %w", err)
	}

	uc.logger.InfoContext(ctx, "sanction letter generated", "customer_id", req.CustomerID, "reference_number", ref)
	return dto.FromSanctionLetter(letter), nil
}

// GetSanctionLetterUseCase retrieves an issued sanction letter.
type GetSanctionLetterUseCase struct {
	letters port.SanctionLetterRepository
}

// NewGetSanctionLetterUseCase wires dependencies.
func NewGetSanctionLetterUseCase(letters port.SanctionLetterRepository) *GetSanctionLetterUseCase {
	return &GetSanctionLetterUseCase{letters: letters}
}

// Execute returns the letter or ErrSanctionLetterNotFound.
func (uc *GetSanctionLetterUseCase) Execute(ctx context.Context, referenceNumber string) (dto.SanctionLetterResponse, error) {
	letter, found, err := uc.letters.FindByReference(ctx, referenceNumber)
	if err != nil {
		return dto.SanctionLetterResponse{}, fmt.Errorf("find sanction letter: %w", err)
	}
	if !found {
		return dto.SanctionLetterResponse{}, fmt.Errorf("sanction letter %s: %w", referenceNumber, model.ErrSanctionLetterNotFound)
	}
	return dto.FromSanctionLetter(letter), nil
}
