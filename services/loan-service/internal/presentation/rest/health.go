package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// HealthHandler serves liveness and readiness checks over HTTP.
type HealthHandler struct {
	service string
	checks  map[string]ReadinessCheck
	logger  *slog.Logger
	now     func() time.Time
}

// NewHealthHandler creates a health check HTTP handler. checks are run by
// /readyz; a nil map means the service is always ready.
func NewHealthHandler(service string, checks map[string]ReadinessCheck, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{service: service, checks: checks, logger: logger, now: time.Now}
}

// RegisterRoutes attaches health-check routes to the router.
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.liveness)
	r.Get("/readyz", h.readiness)
	r.Get("/api/health", h.apiHealth)
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": h.service,
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	failures := make(map[string]string)
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.WarnContext(ctx, "readiness check failed", "check", name, "error", err)
			failures[name] = err.Error()
		}
	}
	if len(failures) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":  "not_ready",
			"service": h.service,
			"checks":  failures,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"service": h.service,
	})
}

func (h *HealthHandler) apiHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": h.now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}
