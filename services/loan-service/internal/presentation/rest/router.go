package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/loanflow/loanflow/pkg/auth"
)

// RouterConfig assembles the HTTP surface.
type RouterConfig struct {
	Loans          *LoanHandler
	Rules          *RulesHandler   // optional
	Products       *ProductHandler // optional
	Health         *HealthHandler
	Metrics        http.Handler
	JWT            *auth.JWTService // nil disables bearer auth
	RateLimiter    *RateLimiter     // nil disables rate limiting
	AllowedOrigins []string
	Logger         *slog.Logger
}

// Health and scrape paths bypass authentication and rate limiting.
var publicPaths = []string{"/healthz", "/readyz", "/api/health", "/metrics"}

// NewRouter builds the chi router serving the REST API, health checks and
// the Prometheus scrape endpoint.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	cfg.Health.RegisterRoutes(r)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Group(func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(RateLimitMiddleware(cfg.RateLimiter))
		}
		if cfg.JWT != nil {
			r.Use(auth.HTTPMiddleware(cfg.JWT, publicPaths))
		}
		cfg.Loans.RegisterRoutes(r)
		if cfg.Rules != nil {
			cfg.Rules.RegisterRoutes(r)
		}
		if cfg.Products != nil {
			cfg.Products.RegisterRoutes(r)
		}
	})

	return r
}
