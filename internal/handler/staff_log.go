package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// StaffLogHandler exposes the audit trail, read-only plus retention purge.
type StaffLogHandler struct {
	Logs *repository.StaffLogRepo
}

func NewStaffLogHandler(l *repository.StaffLogRepo) *StaffLogHandler {
	return &StaffLogHandler{Logs: l}
}

type staffLogResp struct {
	ID        uint64    `json:"id"`
	StaffID   uint64    `json:"staff_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

func logsResp(ls []model.StaffLog) []staffLogResp {
	out := make([]staffLogResp, 0, len(ls))
	for _, l := range ls {
		out = append(out, staffLogResp{ID: l.ID, StaffID: l.StaffID, Action: l.Action, Details: l.Details, CreatedAt: l.CreatedAt})
	}
	return out
}

// List returns recent audit entries, optionally filtered to one staff
// member via ?staff_id=.
func (h *StaffLogHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := reqCtx(c)
	defer cancel()

	if raw := c.QueryParam("staff_id"); raw != "" {
		staffID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || staffID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid staff_id"})
		}
		ls, err := h.Logs.ListByStaff(ctx, staffID, limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list logs failed"})
		}
		return c.JSON(http.StatusOK, logsResp(ls))
	}

	ls, err := h.Logs.ListAll(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list logs failed"})
	}
	return c.JSON(http.StatusOK, logsResp(ls))
}

type purgeReq struct {
	Days int `json:"days"`
}

// Purge deletes audit entries older than the requested number of days.
func (h *StaffLogHandler) Purge(c echo.Context) error {
	var req purgeReq
	if err := c.Bind(&req); err != nil || req.Days <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "days must be a positive integer"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -req.Days)
	n, err := h.Logs.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "purge failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}
