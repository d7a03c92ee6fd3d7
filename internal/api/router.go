// internal/api/router.go
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"exercise-tracker/internal/api/handler"
	"exercise-tracker/internal/observability"
	"exercise-tracker/internal/web"
)

// DefaultTimeout bounds each request when RouterConfig.RequestTimeout is unset.
const DefaultTimeout = 30 * time.Second

// HealthChecker reports whether the backing store is reachable.
type HealthChecker func(ctx context.Context) error

// RouterConfig carries the router's tunables.
type RouterConfig struct {
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	cfg RouterConfig,
	userHandler *handler.UserHandler,
	exerciseHandler *handler.ExerciseHandler,
	healthCheck HealthChecker,
	logger *slog.Logger,
) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	origins := cfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(observability.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(middleware.Timeout(timeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if healthCheck != nil {
			if err := healthCheck(r.Context()); err != nil {
				logger.Warn("Health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("store unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Landing page and its assets
	r.Get("/", web.IndexHandler())
	r.Handle("/public/*", web.StaticHandler("/public/"))

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.ListUsers)
		r.Post("/", userHandler.CreateUser)
		r.Post("/{_id}/exercises", exerciseHandler.AddExercise)
		r.Get("/{_id}/logs", exerciseHandler.GetLog)
	})

	return r
}
