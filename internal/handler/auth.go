package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

// AuthHandler bundles dependencies for staff authentication endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Staff  *repository.StaffRepo
	Tokens *repository.TokenRepo
	Logs   *repository.StaffLogRepo
}

func NewAuthHandler(cfg config.Config, s *repository.StaffRepo, t *repository.TokenRepo, l *repository.StaffLogRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Staff: s, Tokens: t, Logs: l}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"` // ADMIN | MANAGER | RECEPTIONIST
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}
type changePasswordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type staffPart struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}
type authResp struct {
	Staff   staffPart `json:"staff"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

func (h *AuthHandler) issuePair(staffID uint64, role string) (access, refresh tokenPart, refreshHash string, err error) {
	now := time.Now().UTC()
	accessExp := now.Add(time.Duration(h.Cfg.AccessTTLMin) * time.Minute)
	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, staffID, role, time.Duration(h.Cfg.AccessTTLMin)*time.Minute)
	if err != nil {
		return tokenPart{}, tokenPart{}, "", err
	}
	raw, err := utils.NewRefreshToken()
	if err != nil {
		return tokenPart{}, tokenPart{}, "", err
	}
	refreshExp := now.AddDate(0, 0, h.Cfg.RefreshTTLDays)
	return tokenPart{Token: tok, Expires: accessExp},
		tokenPart{Token: raw, Expires: refreshExp},
		utils.HashRefreshRaw(raw), nil
}

// Register creates a staff account and returns a token pair. The route is
// admin-gated; the first account is seeded out of band.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, full_name and password required"})
	}
	role, ok := model.ParseStaffRole(strings.ToUpper(strings.TrimSpace(req.Role)))
	if !ok {
		role = model.RoleReceptionist
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Staff.Create(ctx, req.Email, req.FullName, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create staff failed"})
	}

	access, refresh, hash, err := h.issuePair(id, string(role))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, id, hash, refresh.Expires); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	return c.JSON(http.StatusCreated, authResp{
		Staff:   staffPart{ID: id, Email: req.Email, FullName: req.FullName, Role: string(role)},
		Access:  access,
		Refresh: refresh,
	})
}

// Login verifies credentials and returns a fresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Staff.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	if !s.IsActive || !utils.VerifyPassword(s.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, refresh, hash, err := h.issuePair(s.ID, string(s.Role))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, s.ID, hash, refresh.Expires); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	_ = h.Logs.Add(ctx, s.ID, "LOGIN", "staff logged in")

	return c.JSON(http.StatusOK, authResp{
		Staff:   staffPart{ID: s.ID, Email: s.Email, FullName: s.FullName, Role: string(s.Role)},
		Access:  access,
		Refresh: refresh,
	})
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	hash := utils.HashRefreshRaw(req.RefreshToken)
	staffID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}

	s, err := h.Staff.GetByID(ctx, staffID)
	if err != nil || !s.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account unavailable"})
	}

	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "rotate failed"})
	}
	access, refresh, newHash, err := h.issuePair(s.ID, string(s.Role))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, s.ID, newHash, refresh.Expires); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		Staff:   staffPart{ID: s.ID, Email: s.Email, FullName: s.FullName, Role: string(s.Role)},
		Access:  access,
		Refresh: refresh,
	})
}

// Logout revokes the presented refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(req.RefreshToken)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "logged out"})
}

// Me returns the authenticated staff profile.
func (h *AuthHandler) Me(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Staff.GetByID(ctx, middleware.StaffID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	return c.JSON(http.StatusOK, staffPart{ID: s.ID, Email: s.Email, FullName: s.FullName, Role: string(s.Role)})
}

// ChangePassword verifies the current password, stores a new hash and
// revokes every outstanding refresh token of the account.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "current and new password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	staffID := middleware.StaffID(c)
	s, err := h.Staff.GetByID(ctx, staffID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	if !utils.VerifyPassword(s.PasswordHash, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if err := h.Staff.UpdatePassword(ctx, staffID, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update password failed"})
	}
	if err := h.Tokens.RevokeAllForStaff(ctx, staffID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke sessions failed"})
	}
	_ = h.Logs.Add(ctx, staffID, "PASSWORD_CHANGE", "password changed, sessions revoked")
	return c.JSON(http.StatusOK, echo.Map{"status": "password changed"})
}
