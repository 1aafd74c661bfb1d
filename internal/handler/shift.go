package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// ShiftHandler serves the shift roster endpoints.
type ShiftHandler struct {
	Shifts *repository.ShiftRepo
}

func NewShiftHandler(s *repository.ShiftRepo) *ShiftHandler { return &ShiftHandler{Shifts: s} }

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type shiftReq struct {
	StaffID   uint64 `json:"staff_id"`
	ShiftDate string `json:"shift_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type shiftResp struct {
	ID        uint64 `json:"id"`
	StaffID   uint64 `json:"staff_id"`
	ShiftDate string `json:"shift_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func toShiftResp(s model.StaffShift) shiftResp {
	return shiftResp{
		ID:        s.ID,
		StaffID:   s.StaffID,
		ShiftDate: s.ShiftDate.Format(dateLayout),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}

func shiftsResp(ss []model.StaffShift) []shiftResp {
	out := make([]shiftResp, 0, len(ss))
	for _, s := range ss {
		out = append(out, toShiftResp(s))
	}
	return out
}

func (req *shiftReq) toModel() (model.StaffShift, string) {
	if req.StaffID == 0 {
		return model.StaffShift{}, "staff_id required"
	}
	day, err := parseDate(req.ShiftDate)
	if err != nil {
		return model.StaffShift{}, "shift_date must be YYYY-MM-DD"
	}
	req.StartTime = strings.TrimSpace(req.StartTime)
	req.EndTime = strings.TrimSpace(req.EndTime)
	if !clockRe.MatchString(req.StartTime) || !clockRe.MatchString(req.EndTime) {
		return model.StaffShift{}, "start_time and end_time must be HH:MM"
	}
	return model.StaffShift{
		StaffID:   req.StaffID,
		ShiftDate: day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}, ""
}

// List returns shifts for one day (?date=YYYY-MM-DD, default today) or,
// with ?mine=1, the caller's upcoming shifts.
func (h *ShiftHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if c.QueryParam("mine") == "1" {
		ss, err := h.Shifts.ListForStaff(ctx, middleware.StaffID(c), todayUTC())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list shifts failed"})
		}
		return c.JSON(http.StatusOK, shiftsResp(ss))
	}

	day := todayUTC()
	if raw := strings.TrimSpace(c.QueryParam("date")); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		day = d
	}
	ss, err := h.Shifts.ListByDate(ctx, day)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list shifts failed"})
	}
	return c.JSON(http.StatusOK, shiftsResp(ss))
}

// Current returns the caller's shift in progress right now (UTC), or 404
// when they are off shift.
func (h *ShiftHandler) Current(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	clock := time.Now().UTC().Format("15:04")
	s, err := h.Shifts.CurrentShift(ctx, middleware.StaffID(c), todayUTC(), clock)
	if err != nil {
		if errors.Is(err, repository.ErrShiftNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no shift in progress"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load shift failed"})
	}
	return c.JSON(http.StatusOK, toShiftResp(s))
}

// Create adds a shift to the roster.
func (h *ShiftHandler) Create(c echo.Context) error {
	var req shiftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	s, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Shifts.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create shift failed"})
	}
	return c.JSON(http.StatusCreated, toShiftResp(s))
}

// Update rewrites a shift.
func (h *ShiftHandler) Update(c echo.Context) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid shift id"})
	}
	var req shiftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	s, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	s.ID = id

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Shifts.Update(ctx, &s); err != nil {
		if errors.Is(err, repository.ErrShiftNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "shift not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update shift failed"})
	}
	return c.JSON(http.StatusOK, toShiftResp(s))
}

// Delete removes a shift.
func (h *ShiftHandler) Delete(c echo.Context) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid shift id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Shifts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrShiftNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "shift not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete shift failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted"})
}
