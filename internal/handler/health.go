package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	DB *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler { return &HealthHandler{DB: db} }

// Live always returns 200 while the process is up.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Ready returns 200 only when the database answers a ping.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "degraded", "error": "database unreachable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
