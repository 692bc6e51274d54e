package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/loanflow/loanflow/pkg/auth"
	"github.com/loanflow/loanflow/services/loan-service/internal/application/dto"
	"github.com/loanflow/loanflow/services/loan-service/internal/application/usecase"
)

// RulesHandler exposes the business rules engine under /api/rules.
type RulesHandler struct {
	manage       *usecase.ManageRulesUseCase
	evaluate     *usecase.EvaluateRulesUseCase
	enforceRoles bool
	logger       *slog.Logger
}

// NewRulesHandler creates the rules handler. With enforceRoles set, rule
// edits require the admin role.
func NewRulesHandler(
	manage *usecase.ManageRulesUseCase,
	evaluate *usecase.EvaluateRulesUseCase,
	enforceRoles bool,
	logger *slog.Logger,
) *RulesHandler {
	return &RulesHandler{manage: manage, evaluate: evaluate, enforceRoles: enforceRoles, logger: logger}
}

// RegisterRoutes attaches the rules routes to r.
func (h *RulesHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/rules", h.list)
	r.Post("/api/rules/evaluate", h.evaluateRules)

	r.Group(func(r chi.Router) {
		if h.enforceRoles {
			r.Use(auth.RequireRole(auth.RoleAdmin))
		}
		r.Post("/api/rules", h.create)
		r.Put("/api/rules/{name}", h.update)
		r.Delete("/api/rules/{name}", h.remove)
	})
}

func (h *RulesHandler) list(w http.ResponseWriter, r *http.Request) {
	resp, err := h.manage.List(r.Context())
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *RulesHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.RuleRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	resp, err := h.manage.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *RulesHandler) update(w http.ResponseWriter, r *http.Request) {
	var req dto.RuleUpdateRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	resp, err := h.manage.Update(r.Context(), chi.URLParam(r, "name"), req)
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *RulesHandler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.manage.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RulesHandler) evaluateRules(w http.ResponseWriter, r *http.Request) {
	var req dto.EvaluateRulesRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	resp, err := h.evaluate.Execute(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
