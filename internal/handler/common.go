package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds every database call issued from a handler.
const dbTimeout = 5 * time.Second

// dateLayout is the wire format for calendar dates. Dates are calendar days
// in UTC; no clock time is attached.
const dateLayout = "2006-01-02"

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// paramID parses a numeric path parameter. Returns 0 on malformed input so
// callers can respond 400.
func paramID(c echo.Context, name string) uint64 {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// parseDate parses a "2006-01-02" string as a UTC calendar day.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

// todayUTC returns the current calendar day in UTC, truncated to midnight.
func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
