package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/loanflow/loanflow/pkg/auth"
	"github.com/loanflow/loanflow/services/loan-service/internal/application/dto"
	"github.com/loanflow/loanflow/services/loan-service/internal/application/usecase"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// Compile-time assertion that LoanServiceHandler implements LoanServiceServer.
var _ LoanServiceServer = (*LoanServiceHandler)(nil)

// LoanServiceHandler implements the gRPC LoanServiceServer interface.
type LoanServiceHandler struct {
	UnimplementedLoanServiceServer
	verifyKyc    *usecase.VerifyKycUseCase
	underwrite   *usecase.EvaluateUnderwritingUseCase
	auditLogs    *usecase.GetAuditLogsUseCase
	enforceRoles bool
	logger       *slog.Logger
}

// NewLoanServiceHandler creates a new gRPC handler. When enforceRoles is set
// every call must carry JWT claims with a suitable role.
func NewLoanServiceHandler(
	verifyKyc *usecase.VerifyKycUseCase,
	underwrite *usecase.EvaluateUnderwritingUseCase,
	auditLogs *usecase.GetAuditLogsUseCase,
	enforceRoles bool,
	logger *slog.Logger,
) *LoanServiceHandler {
	return &LoanServiceHandler{
		verifyKyc:    verifyKyc,
		underwrite:   underwrite,
		auditLogs:    auditLogs,
		enforceRoles: enforceRoles,
		logger:       logger,
	}
}

// Proto-aligned request/response message types. Amounts travel as decimal
// strings.

// VerifyKycRequest represents the proto VerifyKycRequest message.
type VerifyKycRequest struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

// VerifyKycResponse represents the proto VerifyKycResponse message.
type VerifyKycResponse struct {
	Status     string   `json:"status"`
	Mismatches []string `json:"mismatches"`
}

// EvaluateUnderwritingRequest represents the proto EvaluateUnderwritingRequest
// message. Optional fields are empty or nil when unknown.
type EvaluateUnderwritingRequest struct {
	CustomerID        string `json:"customer_id"`
	LoanAmount        string `json:"loan_amount"`
	TenureMonths      int32  `json:"tenure_months"`
	AnnualRatePercent string `json:"annual_rate_percent"`
	CreditScore       *int32 `json:"credit_score,omitempty"`
	PreApprovedLimit  string `json:"pre_approved_limit,omitempty"`
	MonthlyNetSalary  string `json:"monthly_net_salary,omitempty"`
}

// EvaluateUnderwritingResponse represents the proto EvaluateUnderwritingResponse message.
type EvaluateUnderwritingResponse struct {
	Decision        string `json:"decision"`
	Reason          string `json:"reason"`
	RequiredAction  string `json:"required_action,omitempty"`
	EMI             string `json:"emi"`
	TotalAmount     string `json:"total_amount"`
	ReferenceNumber string `json:"reference_number"`
}

// GetAuditLogsRequest represents the proto GetAuditLogsRequest message.
type GetAuditLogsRequest struct {
	CustomerID string `json:"customer_id"`
}

// AuditLogEntryMsg represents the proto AuditLogEntry message.
type AuditLogEntryMsg struct {
	ID         string                 `json:"id"`
	CustomerID string                 `json:"customer_id"`
	Timestamp  *timestamppb.Timestamp `json:"timestamp"`
	Action     string                 `json:"action"`
	Decision   string                 `json:"decision,omitempty"`
	Reason     string                 `json:"reason"`
	Metadata   map[string]any         `json:"metadata,omitempty"`
}

// GetAuditLogsResponse represents the proto GetAuditLogsResponse message.
type GetAuditLogsResponse struct {
	Entries []*AuditLogEntryMsg `json:"entries"`
}

// VerifyKyc handles an identity verification request.
func (h *LoanServiceHandler) VerifyKyc(ctx context.Context, req *VerifyKycRequest) (*VerifyKycResponse, error) {
	if err := h.authorize(ctx, auth.RoleAdmin, auth.RoleUnderwriter, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in := dto.VerifyKycRequest{
		CustomerID: req.CustomerID,
		Name:       req.Name,
		Phone:      req.Phone,
		Address:    req.Address,
	}
	if err := in.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := h.verifyKyc.Execute(ctx, in)
	if err != nil {
		return nil, h.internal(ctx, "verify kyc", err)
	}
	return &VerifyKycResponse{Status: result.Status, Mismatches: result.Mismatches}, nil
}

// EvaluateUnderwriting handles a loan underwriting request.
func (h *LoanServiceHandler) EvaluateUnderwriting(ctx context.Context, req *EvaluateUnderwritingRequest) (*EvaluateUnderwritingResponse, error) {
	if err := h.authorize(ctx, auth.RoleAdmin, auth.RoleUnderwriter, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in, err := toUnderwritingRequest(req)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := h.underwrite.Execute(ctx, in)
	if err != nil {
		return nil, h.internal(ctx, "evaluate underwriting", err)
	}
	return &EvaluateUnderwritingResponse{
		Decision:        result.Decision,
		Reason:          result.Reason,
		RequiredAction:  result.RequiredAction,
		EMI:             result.EMI.String(),
		TotalAmount:     result.TotalAmount.String(),
		ReferenceNumber: result.ReferenceNumber,
	}, nil
}

// GetAuditLogs returns a customer's decision trail in insertion order.
func (h *LoanServiceHandler) GetAuditLogs(ctx context.Context, req *GetAuditLogsRequest) (*GetAuditLogsResponse, error) {
	if err := h.authorize(ctx, auth.RoleAdmin, auth.RoleAuditor, auth.RoleUnderwriter); err != nil {
		return nil, err
	}
	if req == nil || req.CustomerID == "" {
		return nil, status.Error(codes.InvalidArgument, "customer_id is required")
	}

	entries, err := h.auditLogs.Execute(ctx, req.CustomerID)
	if err != nil {
		return nil, h.internal(ctx, "get audit logs", err)
	}

	out := make([]*AuditLogEntryMsg, 0, len(entries))
	for _, e := range entries {
		out = append(out, &AuditLogEntryMsg{
			ID:         e.ID,
			CustomerID: e.CustomerID,
			Timestamp:  timestamppb.New(e.Timestamp),
			Action:     e.Action,
			Decision:   e.Decision,
			Reason:     e.Reason,
			Metadata:   e.Metadata,
		})
	}
	return &GetAuditLogsResponse{Entries: out}, nil
}

func (h *LoanServiceHandler) authorize(ctx context.Context, roles ...string) error {
	if !h.enforceRoles {
		return nil
	}
	return requireRole(ctx, roles...)
}

func (h *LoanServiceHandler) internal(ctx context.Context, op string, err error) error {
	if errors.Is(err, model.ErrInvalidRequest) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	h.logger.ErrorContext(ctx, "grpc call failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
	return status.Error(codes.Internal, "internal error")
}

func toUnderwritingRequest(req *EvaluateUnderwritingRequest) (dto.EvaluateUnderwritingRequest, error) {
	amount, err := parseDecimal("loan_amount", req.LoanAmount)
	if err != nil {
		return dto.EvaluateUnderwritingRequest{}, err
	}
	rate := decimal.Zero
	if req.AnnualRatePercent != "" {
		if rate, err = parseDecimal("annual_rate_percent", req.AnnualRatePercent); err != nil {
			return dto.EvaluateUnderwritingRequest{}, err
		}
	}

	in := dto.EvaluateUnderwritingRequest{
		CustomerID:        req.CustomerID,
		LoanAmount:        amount,
		TenureMonths:      int(req.TenureMonths),
		AnnualRatePercent: rate,
	}
	if req.CreditScore != nil {
		score := int(*req.CreditScore)
		in.CreditScore = &score
	}
	if req.PreApprovedLimit != "" {
		limit, err := parseDecimal("pre_approved_limit", req.PreApprovedLimit)
		if err != nil {
			return dto.EvaluateUnderwritingRequest{}, err
		}
		in.PreApprovedLimit = &limit
	}
	if req.MonthlyNetSalary != "" {
		salary, err := parseDecimal("monthly_net_salary", req.MonthlyNetSalary)
		if err != nil {
			return dto.EvaluateUnderwritingRequest{}, err
		}
		in.MonthlyNetSalary = &salary
	}
	return in, nil
}

func parseDecimal(field, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return d, nil
}
