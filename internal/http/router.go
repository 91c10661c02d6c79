// Package httptransport assembles the HTTP surface: middleware chain, feature
// handler registration, and the operational endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"appealboard/internal/platform/middleware"
	"appealboard/pkg/platform/httputil"
)

// Registrar is implemented by every feature handler.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck probes one backend; nil error means healthy.
type HealthCheck func(ctx context.Context) error

// Deps collects everything the router needs. HealthChecks maps backend name
// to probe; backends not configured are simply absent.
type Deps struct {
	Logger        *slog.Logger
	JWTSigningKey string
	Features      []Registrar
	HealthChecks  map[string]HealthCheck
}

// NewRouter builds the service router. Every feature endpoint sits behind
// authentication; only /healthz and /metrics are open.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	r.Get("/healthz", handleHealth(deps.HealthChecks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.JWTSigningKey, deps.Logger))
		for _, feature := range deps.Features {
			feature.Register(r)
		}
	})

	return r
}

func handleHealth(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		backends := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				backends[name] = "unhealthy"
				status = http.StatusServiceUnavailable
				continue
			}
			backends[name] = "ok"
		}
		httputil.WriteJSON(w, status, map[string]any{
			"status":   http.StatusText(status),
			"backends": backends,
		})
	}
}
