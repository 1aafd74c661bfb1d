package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// StaffHandler serves admin-side staff account management. Account
// creation goes through AuthHandler.Register.
type StaffHandler struct {
	Staff  *repository.StaffRepo
	Tokens *repository.TokenRepo
	Logs   *repository.StaffLogRepo
}

func NewStaffHandler(s *repository.StaffRepo, t *repository.TokenRepo, l *repository.StaffLogRepo) *StaffHandler {
	return &StaffHandler{Staff: s, Tokens: t, Logs: l}
}

type staffDetailResp struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toStaffDetail(s model.Staff) staffDetailResp {
	return staffDetailResp{ID: s.ID, Email: s.Email, FullName: s.FullName, Role: string(s.Role), IsActive: s.IsActive, CreatedAt: s.CreatedAt}
}

// List returns all staff accounts.
func (h *StaffHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	staff, err := h.Staff.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list staff failed"})
	}
	out := make([]staffDetailResp, 0, len(staff))
	for _, s := range staff {
		out = append(out, toStaffDetail(s))
	}
	return c.JSON(http.StatusOK, out)
}

type updateStaffReq struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// Update changes name, role and active flag of an account.
func (h *StaffHandler) Update(c echo.Context) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid staff id"})
	}
	var req updateStaffReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FullName = strings.TrimSpace(req.FullName)
	role, ok := model.ParseStaffRole(strings.ToUpper(strings.TrimSpace(req.Role)))
	if req.FullName == "" || !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name and a valid role required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s := model.Staff{ID: id, FullName: req.FullName, Role: role, IsActive: req.IsActive}
	if err := h.Staff.Update(ctx, &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "staff not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update staff failed"})
	}
	if !req.IsActive {
		_ = h.Tokens.RevokeAllForStaff(ctx, id)
	}
	_ = h.Logs.Add(ctx, middleware.StaffID(c), "STAFF_UPDATE", "updated staff account "+s.FullName)

	updated, err := h.Staff.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load staff failed"})
	}
	return c.JSON(http.StatusOK, toStaffDetail(updated))
}

// Deactivate disables login for an account and revokes its sessions.
// Accounts are never deleted so audit rows keep a valid reference.
func (h *StaffHandler) Deactivate(c echo.Context) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid staff id"})
	}
	if id == middleware.StaffID(c) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot deactivate yourself"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Staff.Deactivate(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "staff not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deactivate staff failed"})
	}
	_ = h.Tokens.RevokeAllForStaff(ctx, id)
	_ = h.Logs.Add(ctx, middleware.StaffID(c), "STAFF_DEACTIVATE", "deactivated staff account")
	return c.JSON(http.StatusOK, echo.Map{"status": "deactivated"})
}
