package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Health pings the database.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		return writeJSON(c, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}
