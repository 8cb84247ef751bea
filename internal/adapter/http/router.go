package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Suvojeet-Haldar/expense-manager/internal/adapter/http/handler"
	"github.com/Suvojeet-Haldar/expense-manager/internal/adapter/http/middleware"
	"github.com/Suvojeet-Haldar/expense-manager/internal/domain"
	"github.com/Suvojeet-Haldar/expense-manager/internal/infrastructure/auth"
	"github.com/Suvojeet-Haldar/expense-manager/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	StateHandler     *handler.StateHandler
	TxLogHandler     *handler.TxLogHandler
	AuthHandler      *handler.AuthHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	JWTManager       *auth.JWTManager
	AuthEnabled      bool
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		if cfg.AuthHandler != nil {
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		r.Group(func(r chi.Router) {
			if cfg.AuthEnabled && cfg.JWTManager != nil {
				r.Use(middleware.AuthMiddleware(cfg.JWTManager))
			} else if cfg.JWTManager != nil {
				r.Use(middleware.OptionalAuth(cfg.JWTManager))
			}

			// Live state
			r.Route("/state", func(r chi.Router) {
				r.Get("/", cfg.StateHandler.Get)

				r.Group(func(r chi.Router) {
					if cfg.AuthEnabled {
						r.Use(middleware.RequireRole(domain.RoleOperator))
					}

					r.Post("/subtract", cfg.StateHandler.Subtract)
					r.Post("/entries", cfg.StateHandler.AddEntry)
					r.Put("/entries/{index}", cfg.StateHandler.EditEntry)
					r.Delete("/entries/{index}", cfg.StateHandler.DeleteEntry)
				})
			})

			// Transaction log
			r.Get("/transactions", cfg.TxLogHandler.List)

			if cfg.AuthHandler != nil {
				r.Get("/auth/me", cfg.AuthHandler.GetCurrentUser)

				r.Group(func(r chi.Router) {
					if cfg.AuthEnabled {
						r.Use(middleware.RequireRole(domain.RoleAdmin))
					}
					r.Post("/auth/register", cfg.AuthHandler.Register)
				})
			}
		})
	})

	return r
}
