package usecase

import (
	"context"
	"fmt"

	"github.com/loanflow/loanflow/services/loan-service/internal/application/dto"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/port"
)

// GetAuditLogsUseCase reads a customer's audit trail.
type GetAuditLogsUseCase struct {
	audit port.AuditLog
}

// NewGetAuditLogsUseCase wires dependencies.
func NewGetAuditLogsUseCase(audit port.AuditLog) *GetAuditLogsUseCase {
	return &GetAuditLogsUseCase{audit: audit}
}

// Execute returns the entries in insertion order; never nil.
func (uc *GetAuditLogsUseCase) Execute(ctx context.Context, customerID string) ([]dto.AuditLogEntryResponse, error) {
	entries, err := uc.audit.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	out := make([]dto.AuditLogEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.FromAuditLogEntry(e))
	}
	return out, nil
}
