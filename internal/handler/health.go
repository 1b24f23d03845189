package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/colleague-finance-api/internal/middleware"
	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const healthCheckTimeout = 5 * time.Second

// HealthHandler reports whether the API and its stores are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type healthCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]healthCheck `json:"checks"`
}

// CheckHealth answers 200 when the database is reachable and 503 otherwise.
// Redis is reported but only degrades the status, since reads fall back to
// the database.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]healthCheck{},
	}

	if h.server.DB != nil {
		check := h.ping(c.Request().Context(), "database", h.server.DB.Pool.Ping)
		response.Checks["database"] = check
		if check.Status != "healthy" {
			response.Status = "unhealthy"
		}
	}

	if h.server.Redis != nil {
		check := h.ping(c.Request().Context(), "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
		response.Checks["redis"] = check
		if check.Status != "healthy" && response.Status == "healthy" {
			response.Status = "degraded"
		}
	}

	if response.Status == "unhealthy" {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		h.recordFailure("overall", map[string]interface{}{
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Str("status", response.Status).
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return errors.Wrap(err, "failed to write JSON response")
	}
	return nil
}

func (h *HealthHandler) ping(ctx context.Context, name string, ping func(context.Context) error) healthCheck {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start)

	if err != nil {
		h.server.Logger.Error().Err(err).Dur("response_time", elapsed).Msgf("%s health check failed", name)
		h.recordFailure(name, map[string]interface{}{
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
		return healthCheck{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
	}
	return healthCheck{Status: "healthy", ResponseTime: elapsed.String()}
}

// recordFailure sends a HealthCheckError custom event when New Relic is on.
func (h *HealthHandler) recordFailure(checkType string, attrs map[string]interface{}) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}
	attrs["check_type"] = checkType
	attrs["operation"] = "health_check"
	attrs["error_type"] = checkType + "_unhealthy"
	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", attrs)
}
