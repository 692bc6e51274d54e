package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/loanflow/loanflow/services/loan-service/internal/application/dto"
	"github.com/loanflow/loanflow/services/loan-service/internal/application/usecase"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
)

const maxBodyBytes = 1 << 20

// LoanHandler exposes the loan use cases as JSON endpoints under /api.
type LoanHandler struct {
	verifyKyc      *usecase.VerifyKycUseCase
	underwrite     *usecase.EvaluateUnderwritingUseCase
	auditLogs      *usecase.GetAuditLogsUseCase
	directory      *usecase.CustomerDirectoryUseCase
	extractSalary  *usecase.ExtractSalaryUseCase
	generateLetter *usecase.GenerateSanctionLetterUseCase
	getLetter      *usecase.GetSanctionLetterUseCase
	logger         *slog.Logger
}

// NewLoanHandler creates the /api handler.
func NewLoanHandler(
	verifyKyc *usecase.VerifyKycUseCase,
	underwrite *usecase.EvaluateUnderwritingUseCase,
	auditLogs *usecase.GetAuditLogsUseCase,
	directory *usecase.CustomerDirectoryUseCase,
	extractSalary *usecase.ExtractSalaryUseCase,
	generateLetter *usecase.GenerateSanctionLetterUseCase,
	getLetter *usecase.GetSanctionLetterUseCase,
	logger *slog.Logger,
) *LoanHandler {
	return &LoanHandler{
		verifyKyc:      verifyKyc,
		underwrite:     underwrite,
		auditLogs:      auditLogs,
		directory:      directory,
		extractSalary:  extractSalary,
		generateLetter: generateLetter,
		getLetter:      getLetter,
		logger:         logger,
	}
}

// RegisterRoutes attaches the /api routes to r.
func (h *LoanHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/customers", h.listCustomers)
	r.Get("/api/customers/{id}", h.getCustomer)
	r.Get("/api/crm/{id}", h.getCrmRecord)
	r.Get("/api/credit/{id}", h.getCreditReport)
	r.Get("/api/offers", h.listOffers)
	r.Get("/api/offers/{id}", h.listOffersByCustomer)
	r.Post("/api/verify-kyc", h.verifyKycHandler)
	r.Post("/api/extract-salary", h.extractSalaryHandler)
	r.Post("/api/underwrite", h.underwriteHandler)
	r.Post("/api/generate-sanction-letter", h.generateSanctionLetter)
	r.Get("/api/sanction/{ref}", h.getSanctionLetter)
	r.Get("/api/audit/{id}", h.getAuditLogs)
}

func (h *LoanHandler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.directory.ListCustomers(r.Context())
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *LoanHandler) getCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.directory.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *LoanHandler) getCrmRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.directory.GetCrmRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *LoanHandler) getCreditReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.directory.GetCreditReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *LoanHandler) listOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.directory.ListOffers(r.Context())
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

func (h *LoanHandler) listOffersByCustomer(w http.ResponseWriter, r *http.Request) {
	offers, err := h.directory.ListOffersByCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

func (h *LoanHandler) verifyKycHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyKycRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	resp, err := h.verifyKyc.Execute(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) extractSalaryHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.ExtractSalaryRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.extractSalary.Execute(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) underwriteHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.EvaluateUnderwritingRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	resp, err := h.underwrite.Execute(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) generateSanctionLetter(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateSanctionLetterRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	resp, err := h.generateLetter.Execute(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *LoanHandler) getSanctionLetter(w http.ResponseWriter, r *http.Request) {
	resp, err := h.getLetter.Execute(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) getAuditLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.auditLogs.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *LoanHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	return decodeJSON(w, r, h.logger, v)
}

// decodeJSON reads a JSON body into v, writing a 400 response on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeDomainError(w, r, logger, fmt.Errorf("%w: malformed JSON body: %v", model.ErrInvalidRequest, err))
		return false
	}
	return true
}
