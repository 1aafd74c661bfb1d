package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RequireRole rejects requests whose authenticated role is not in the given
// set. It must run after JWTAuth.
func RequireRole(roles ...model.StaffRole) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allowed[Role(c)] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
