package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/loanflow/loanflow/services/loan-service/internal/domain/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps use case errors onto HTTP statuses. Unexpected
// errors are logged and reported without detail.
func writeDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrCustomerNotFound),
		errors.Is(err, model.ErrSanctionLetterNotFound),
		errors.Is(err, model.ErrRuleNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrRuleExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
