package health

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CheckFunc probes one dependency; a non-nil error marks it unhealthy
type CheckFunc func(ctx context.Context) error

// Handler serves liveness and readiness endpoints
type Handler struct {
	serviceName string
	checks      map[string]CheckFunc
}

// NewHandler creates a health handler with named dependency checks
func NewHandler(serviceName string, checks map[string]CheckFunc) *Handler {
	return &Handler{
		serviceName: serviceName,
		checks:      checks,
	}
}

// RegisterHealthEndpoints registers /health and /health/ready
func (h *Handler) RegisterHealthEndpoints(e *echo.Echo) {
	healthGroup := e.Group("/health")
	healthGroup.GET("", h.Liveness)
	healthGroup.GET("/ready", h.Readiness)
}

// Liveness reports that the process is up; used by load balancers
func (h *Handler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"service":   h.serviceName,
		"timestamp": time.Now(),
	})
}

// Readiness probes every dependency and reports per-dependency status
func (h *Handler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	return c.JSON(status, map[string]interface{}{
		"status":       http.StatusText(status),
		"service":      h.serviceName,
		"dependencies": results,
		"timestamp":    time.Now(),
	})
}
