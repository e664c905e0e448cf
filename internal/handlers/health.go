package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memohai/tokembed/internal/healthcheck"
)

// HealthHandler serves the runtime checks of the bot.
type HealthHandler struct {
	logger   *slog.Logger
	checkers []healthcheck.Checker
}

type healthResponse struct {
	Status string                    `json:"status"`
	Checks []healthcheck.CheckResult `json:"checks"`
}

func NewHealthHandler(log *slog.Logger, checkers ...healthcheck.Checker) *HealthHandler {
	return &HealthHandler{
		logger:   log.With(slog.String("handler", "health")),
		checkers: checkers,
	}
}

func (h *HealthHandler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
}

// Health responds 503 when any check is in the error state.
func (h *HealthHandler) Health(c echo.Context) error {
	checks := healthcheck.Run(c.Request().Context(), h.checkers...)
	if healthcheck.Healthy(checks) {
		return c.JSON(http.StatusOK, healthResponse{Status: healthcheck.StatusOK, Checks: checks})
	}
	h.logger.Warn("health check failed", slog.Int("checks", len(checks)))
	return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: healthcheck.StatusError, Checks: checks})
}
