package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cookbook/catalog/internal/ports/outbound"
)

// HealthHandler reports the availability of the service and its stores
type HealthHandler struct {
	version  string
	checkers map[string]outbound.HealthChecker
	timeout  time.Duration
	logger   *zap.Logger
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// NewHealthHandler creates a health handler over the named checkers
func NewHealthHandler(version string, checkers map[string]outbound.HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		version:  version,
		checkers: checkers,
		timeout:  2 * time.Second,
		logger:   logger.Named("health"),
	}
}

// ServeHTTP handles GET /health
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
		Checks:    make(map[string]string, len(h.checkers)),
	}
	status := http.StatusOK

	for name, checker := range h.checkers {
		if err := checker.Ping(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.String("check", name), zap.Error(err))
			resp.Checks[name] = "unhealthy"
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "healthy"
	}

	writeJSON(w, status, resp)
}
