package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/utils"
)

// Context keys set by JWTAuth and read by handlers and RequireRole.
const (
	CtxStaffID = "staff_id"
	CtxRole    = "role"
)

// JWTAuth validates a Bearer access token and stores the staff ID and role
// in the request context. Protected routes must be wrapped with it.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(CtxStaffID, claims.StaffID)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

// StaffID returns the authenticated staff ID from the context, or 0 when the
// request is unauthenticated.
func StaffID(c echo.Context) uint64 {
	if v, ok := c.Get(CtxStaffID).(uint64); ok {
		return v
	}
	return 0
}

// Role returns the authenticated role from the context, or "" when absent.
func Role(c echo.Context) string {
	if v, ok := c.Get(CtxRole).(string); ok {
		return v
	}
	return ""
}
